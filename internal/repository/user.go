package repository

import (
	"context"
	"time"

	"driveu/internal/domain"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	// Create adds a new user. It returns ErrConflict if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email, compared case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateLocation stores the user's last known position.
	UpdateLocation(ctx context.Context, id string, loc domain.Location) error

	// TouchLogin records a successful login.
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// AccountRepository stores a new account as a single unit.
type AccountRepository interface {
	// CreateAccount adds user and, when driver is non-nil, the driver
	// profile. Either both are stored or neither is. It returns ErrConflict
	// if the email or id is taken.
	CreateAccount(ctx context.Context, user *domain.User, driver *domain.Driver) error
}
