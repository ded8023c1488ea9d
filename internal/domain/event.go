package domain

import "time"

// EventType names a booking lifecycle notification.
type EventType string

const (
	EventBookingRequested EventType = "booking.requested"
	EventBookingAccepted  EventType = "booking.accepted"
	EventBookingDenied    EventType = "booking.denied"
	EventTripStarted      EventType = "trip.started"
	EventBookingCompleted EventType = "booking.completed"
)

// BookingEvent is published after a booking transition is persisted. It
// never carries the OTP.
type BookingEvent struct {
	Type       EventType     `json:"type"`
	BookingID  string        `json:"booking_id"`
	Code       string        `json:"code"`
	OwnerID    string        `json:"owner_id"`
	DriverID   string        `json:"driver_id"`
	Status     BookingStatus `json:"status"`
	Fare       float64       `json:"fare"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBookingEvent snapshots b as an event of the given type.
func NewBookingEvent(t EventType, b Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		Code:       b.Code,
		OwnerID:    b.OwnerID,
		DriverID:   b.DriverID,
		Status:     b.Status,
		Fare:       b.Fare,
		OccurredAt: at,
	}
}
