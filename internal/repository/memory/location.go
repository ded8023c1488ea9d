package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"driveu/internal/geo"
	"driveu/internal/redis"
)

// LocationIndex is an in-memory stand-in for the Redis driver geo index.
type LocationIndex struct {
	mu        sync.RWMutex
	positions map[string][2]float64
}

// NewLocationIndex creates an empty LocationIndex.
func NewLocationIndex() *LocationIndex {
	return &LocationIndex{positions: make(map[string][2]float64)}
}

// UpdateLocation indexes the driver's position.
func (i *LocationIndex) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.positions[driverID] = [2]float64{lat, lng}
	return nil
}

// FindNearbyDrivers returns indexed drivers within radiusKm, nearest first.
func (i *LocationIndex) FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]redis.DriverLocation, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]redis.DriverLocation, 0)
	for id, pos := range i.positions {
		d := geo.DistanceCoords(lat, lng, pos[0], pos[1])
		if d <= radiusKm {
			out = append(out, redis.DriverLocation{DriverID: id, Lat: pos[0], Lng: pos[1], DistanceKm: d})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].DistanceKm != out[b].DistanceKm {
			return out[a].DistanceKm < out[b].DistanceKm
		}
		return out[a].DriverID < out[b].DriverID
	})
	return out, nil
}

// IsIndexed reports whether the driver has an indexed position.
func (i *LocationIndex) IsIndexed(ctx context.Context, driverID string) (bool, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.positions[driverID]
	return ok, nil
}

// RemoveLocation drops the driver from the index.
func (i *LocationIndex) RemoveLocation(ctx context.Context, driverID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.positions, driverID)
	return nil
}

type lease struct {
	token   string
	expires time.Time
}

// LockStore is an in-process booking lock with expiry.
type LockStore struct {
	mu    sync.Mutex
	locks map[string]lease
	now   func() time.Time
}

// NewLockStore creates an empty LockStore.
func NewLockStore() *LockStore {
	return &LockStore{locks: make(map[string]lease), now: time.Now}
}

// AcquireBookingLock returns a token, or "" if an unexpired lease exists.
func (s *LockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if l, ok := s.locks[bookingID]; ok && now.Before(l.expires) {
		return "", nil
	}
	token := uuid.NewString()
	s.locks[bookingID] = lease{token: token, expires: now.Add(ttl)}
	return token, nil
}

// ReleaseBookingLock drops the lease if token still owns it.
func (s *LockStore) ReleaseBookingLock(ctx context.Context, bookingID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[bookingID]; ok && l.token == token {
		delete(s.locks, bookingID)
	}
	return nil
}

var (
	_ redis.LocationStoreInterface = (*LocationIndex)(nil)
	_ redis.LockStoreInterface     = (*LockStore)(nil)
)
