package repository

import (
	"context"

	"driveu/internal/domain"
)

// DriverRepository defines the persistence operations for driver profiles.
// Driver ids are the ids of the owning user accounts.
type DriverRepository interface {
	// Create adds a new driver profile.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByIDs retrieves the drivers that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Driver, error)

	// UpdateLocation stores the driver's last reported position.
	UpdateLocation(ctx context.Context, id string, loc domain.Location) error

	// Reserve marks an available driver as taken by bookingID. It returns
	// false without error when the driver is already reserved.
	Reserve(ctx context.Context, driverID, bookingID string) (bool, error)

	// Release makes the driver available again if it is still reserved for
	// bookingID. Releasing a driver held by another booking is a no-op.
	Release(ctx context.Context, driverID, bookingID string) error

	// RecordTrip adds a completed trip to the driver's totals and folds the
	// rating into the running average.
	RecordTrip(ctx context.Context, driverID string, fare, rating float64) error
}
