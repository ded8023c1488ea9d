package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusAccepted  BookingStatus = "ACCEPTED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusDenied    BookingStatus = "DENIED"
)

// Terminal reports whether no further transition is possible from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusDenied
}

// Booking is a single hourly hire of a driver by an owner.
type Booking struct {
	ID            string
	Code          string // human readable, e.g. BOOK-20240102150405-X7K2
	OwnerID       string
	DriverID      string
	Pickup        *Location
	Destination   Location
	DurationHours int
	HourlyRate    float64
	Fare          float64
	OTP           string
	Status        BookingStatus
	Rating        *float64
	Review        string

	DistanceKm       float64 // straight-line pickup -> destination, 0 without pickup
	EstimatedMinutes int

	RequestedAt time.Time
	AcceptedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time

	ActualStartLocation   *Location
	ActualEndLocation     *Location
	ActualDistanceKm      float64
	ActualDurationMinutes int
}

// HasParticipant reports whether userID is the owner or the driver.
func (b Booking) HasParticipant(userID string) bool {
	return userID != "" && (b.OwnerID == userID || b.DriverID == userID)
}
