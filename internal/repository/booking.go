package repository

import (
	"context"

	"driveu/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// Update overwrites the booking only if its stored status is still prev.
	// It returns ErrConflict when another writer moved the booking first.
	Update(ctx context.Context, booking *domain.Booking, prev domain.BookingStatus) error

	// ListByOwner returns the owner's bookings, newest first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.Booking, error)

	// ListByDriver returns the bookings assigned to the driver, newest first.
	ListByDriver(ctx context.Context, driverID string, limit int) ([]*domain.Booking, error)

	// ListRequestedForDriver returns the driver's bookings still awaiting a
	// decision, oldest first.
	ListRequestedForDriver(ctx context.Context, driverID string) ([]*domain.Booking, error)
}
