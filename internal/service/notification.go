package service

import (
	"context"
	"log/slog"

	"driveu/internal/domain"
)

// Notifier delivers booking events to interested parties.
type Notifier interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// LogNotifier writes events to the log. It is used when no broker is
// configured.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Publish implements Notifier.
func (n *LogNotifier) Publish(ctx context.Context, event domain.BookingEvent) error {
	n.log.InfoContext(ctx, "booking event",
		"type", event.Type,
		"booking_id", event.BookingID,
		"owner_id", event.OwnerID,
		"driver_id", event.DriverID,
		"status", event.Status,
	)
	return nil
}

// notify publishes event and logs delivery failures. The transition that
// produced the event is already persisted, so a failure here is not returned.
func notify(ctx context.Context, n Notifier, log *slog.Logger, event domain.BookingEvent) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to publish booking event",
			"type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}
