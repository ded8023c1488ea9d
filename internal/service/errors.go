package service

import (
	"errors"
	"fmt"

	"driveu/internal/domain"
)

var (
	// ErrUnauthorized is returned when an operation needs a signed-in caller.
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the caller's role or relation to the
	// booking does not allow the operation.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDriverUnavailable is returned when booking a driver that is not
	// currently available.
	ErrDriverUnavailable = errors.New("driver is not available")

	// ErrDriverBusy is returned when a driver cannot be reserved because
	// another booking already holds them.
	ErrDriverBusy = errors.New("driver is already reserved for another booking")

	// ErrBookingBusy is returned when another request is transitioning the
	// same booking.
	ErrBookingBusy = errors.New("booking is being updated, try again")

	// ErrLocationRequired is returned when a search has no center and the
	// caller has never reported a location.
	ErrLocationRequired = errors.New("location required")
)

// Validation failures wrap domain.ErrInvalidArgument so callers can treat
// them as one kind.
var (
	ErrInvalidLocation = fmt.Errorf("%w: invalid location", domain.ErrInvalidArgument)
	ErrInvalidPlan     = fmt.Errorf("%w: no hourly plan for the requested duration", domain.ErrInvalidArgument)
	ErrInvalidRadius   = fmt.Errorf("%w: radius must be between 0 and 50 km", domain.ErrInvalidArgument)
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, fmt.Sprintf(format, args...))
}
