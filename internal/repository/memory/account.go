package memory

import (
	"context"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

// AccountStore is an in-memory repository.AccountRepository over a
// UserStore and a DriverStore.
type AccountStore struct {
	users   *UserStore
	drivers *DriverStore
}

// NewAccountStore creates an AccountStore writing into users and drivers.
func NewAccountStore(users *UserStore, drivers *DriverStore) *AccountStore {
	return &AccountStore{users: users, drivers: drivers}
}

// CreateAccount checks both stores for conflicts before writing either.
// Locks are taken users first, then drivers.
func (s *AccountStore) CreateAccount(ctx context.Context, user *domain.User, driver *domain.Driver) error {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	s.drivers.mu.Lock()
	defer s.drivers.mu.Unlock()

	if s.users.conflictLocked(user) {
		return repository.ErrConflict
	}
	if driver != nil {
		if _, ok := s.drivers.drivers[driver.ID]; ok {
			return repository.ErrConflict
		}
	}

	s.users.users[user.ID] = cloneUser(user)
	if driver != nil {
		s.drivers.drivers[driver.ID] = cloneDriver(driver)
	}
	return nil
}
