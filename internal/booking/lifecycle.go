// Package booking implements the booking state machine:
//
//	REQUESTED -> ACCEPTED -> ACTIVE -> COMPLETED
//	REQUESTED -> DENIED
//
// Every operation takes a booking by value and returns the updated copy, so a
// failed transition never alters the caller's record.
//
// The lifecycle does not touch driver availability. Callers must reserve the
// driver atomically before persisting an accepted booking and release it once
// the booking is completed.
package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"driveu/internal/domain"
	"driveu/internal/fare"
)

const (
	otpMin = 1000
	otpMax = 9999

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Lifecycle applies booking transitions.
type Lifecycle struct {
	rand  RandomSource
	now   func() time.Time
	newID func() string
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) { l.now = now }
}

// WithIDGenerator overrides booking id generation.
func WithIDGenerator(newID func() string) Option {
	return func(l *Lifecycle) { l.newID = newID }
}

// NewLifecycle creates a Lifecycle drawing OTPs from src. A nil src uses
// CryptoSource.
func NewLifecycle(src RandomSource, opts ...Option) *Lifecycle {
	if src == nil {
		src = CryptoSource{}
	}
	l := &Lifecycle{
		rand:  src,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create builds a new REQUESTED booking priced at plan.Hours * driverHourlyRate.
func (l *Lifecycle) Create(ownerID, driverID string, destination domain.Location, plan domain.HourlyPlan, driverHourlyRate float64) (domain.Booking, error) {
	if ownerID == "" {
		return domain.Booking{}, fmt.Errorf("%w: owner id is required", domain.ErrInvalidArgument)
	}
	if driverID == "" {
		return domain.Booking{}, fmt.Errorf("%w: driver id is required", domain.ErrInvalidArgument)
	}
	if plan.Hours <= 0 {
		return domain.Booking{}, fmt.Errorf("%w: plan hours must be positive, got %d", domain.ErrInvalidArgument, plan.Hours)
	}

	total, err := fare.ComputeFare(float64(plan.Hours), driverHourlyRate)
	if err != nil {
		return domain.Booking{}, err
	}

	now := l.now()
	return domain.Booking{
		ID:            l.newID(),
		Code:          l.code(now),
		OwnerID:       ownerID,
		DriverID:      driverID,
		Destination:   destination,
		DurationHours: plan.Hours,
		HourlyRate:    driverHourlyRate,
		Fare:          total,
		Status:        domain.BookingStatusRequested,
		RequestedAt:   now,
	}, nil
}

// Accept issues a fresh OTP and moves a REQUESTED booking to ACCEPTED.
func (l *Lifecycle) Accept(b domain.Booking) (domain.Booking, error) {
	if err := requireStatus(b, domain.BookingStatusRequested, "accept"); err != nil {
		return b, err
	}
	b.OTP = fmt.Sprintf("%d", otpMin+l.rand.IntN(otpMax-otpMin+1))
	b.Status = domain.BookingStatusAccepted
	b.AcceptedAt = l.now()
	return b, nil
}

// Deny moves a REQUESTED booking to DENIED.
func (l *Lifecycle) Deny(b domain.Booking) (domain.Booking, error) {
	if err := requireStatus(b, domain.BookingStatusRequested, "deny"); err != nil {
		return b, err
	}
	b.Status = domain.BookingStatusDenied
	return b, nil
}

// VerifyOTP starts the trip when submitted equals the stored OTP. On mismatch
// it returns ErrOTPMismatch together with the unchanged booking.
func (l *Lifecycle) VerifyOTP(b domain.Booking, submitted string) (domain.Booking, error) {
	if err := requireStatus(b, domain.BookingStatusAccepted, "verify otp"); err != nil {
		return b, err
	}
	if submitted != b.OTP {
		return b, domain.ErrOTPMismatch
	}
	b.Status = domain.BookingStatusActive
	b.StartedAt = l.now()
	return b, nil
}

// Complete finishes an ACTIVE booking with a 1-5 rating (at most one decimal
// place) and an optional review.
func (l *Lifecycle) Complete(b domain.Booking, rating float64, review string) (domain.Booking, error) {
	if err := requireStatus(b, domain.BookingStatusActive, "complete"); err != nil {
		return b, err
	}
	if err := ValidateRating(rating); err != nil {
		return b, err
	}
	r := rating
	b.Rating = &r
	b.Review = strings.TrimSpace(review)
	b.Status = domain.BookingStatusCompleted
	b.CompletedAt = l.now()
	return b, nil
}

// ValidateRating checks 1 <= rating <= 5 with at most one decimal place.
func ValidateRating(rating float64) error {
	if !(rating >= 1 && rating <= 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %v", domain.ErrInvalidArgument, rating)
	}
	tenths := rating * 10
	if math.Abs(tenths-math.Round(tenths)) > 1e-9 {
		return fmt.Errorf("%w: rating allows one decimal place, got %v", domain.ErrInvalidArgument, rating)
	}
	return nil
}

func requireStatus(b domain.Booking, want domain.BookingStatus, op string) error {
	if b.Status != want {
		return fmt.Errorf("%w: cannot %s booking in status %s", domain.ErrInvalidState, op, b.Status)
	}
	return nil
}

func (l *Lifecycle) code(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = codeAlphabet[l.rand.IntN(len(codeAlphabet))]
	}
	return "BOOK-" + now.UTC().Format("20060102150405") + "-" + string(suffix)
}
