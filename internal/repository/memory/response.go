package memory

import (
	"context"
	"sync"
	"time"

	"driveu/internal/redis"
)

type storedResponse struct {
	data    []byte
	expires time.Time
}

// ResponseStore keeps idempotent responses in process.
type ResponseStore struct {
	mu        sync.Mutex
	responses map[string]storedResponse
	now       func() time.Time
}

// NewResponseStore creates an empty ResponseStore.
func NewResponseStore() *ResponseStore {
	return &ResponseStore{responses: make(map[string]storedResponse), now: time.Now}
}

func (s *ResponseStore) GetResponse(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.responses[key]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(r.expires) {
		delete(s.responses, key)
		return nil, false, nil
	}
	return append([]byte(nil), r.data...), true, nil
}

func (s *ResponseStore) SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[key] = storedResponse{data: append([]byte(nil), data...), expires: s.now().Add(ttl)}
	return nil
}

var _ redis.ResponseStoreInterface = (*ResponseStore)(nil)
