package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*domain.User)}
}

// Create adds a new user. Emails are unique case-insensitively.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflictLocked(user) {
		return repository.ErrConflict
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

// conflictLocked reports whether user's id or email is taken. s.mu must be held.
func (s *UserStore) conflictLocked(user *domain.User) bool {
	if _, ok := s.users[user.ID]; ok {
		return true
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return true
		}
	}
	return false
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

// UpdateLocation stores the user's last known position.
func (s *UserStore) UpdateLocation(ctx context.Context, id string, loc domain.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Location = &loc
	return nil
}

// TouchLogin records a successful login.
func (s *UserStore) TouchLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLoginAt = at
	return nil
}
