package domain

import "errors"

// Error kinds shared by the booking core. Callers match them with errors.Is;
// concrete failures wrap one of these with additional context.
var (
	// ErrInvalidArgument is returned for malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation is not allowed from the
	// booking's current status.
	ErrInvalidState = errors.New("invalid state")

	// ErrOTPMismatch is returned when a submitted OTP does not match the stored
	// one. It is recoverable: the caller may prompt for the code again.
	ErrOTPMismatch = errors.New("otp mismatch")
)
