package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"driveu/internal/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	publishErr error
	declareErr error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_RoutesByEventType(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisher(ch, "driveu.bookings", discardLogger())
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if len(ch.declared) != 1 || ch.declared[0] != "driveu.bookings:topic" {
		t.Fatalf("expected topic exchange declaration, got %v", ch.declared)
	}

	b := domain.Booking{ID: "b-1", Code: "BOOK-1", OwnerID: "o-1", DriverID: "d-1", Status: domain.BookingStatusAccepted, OTP: "1234", Fare: 450}
	event := domain.NewBookingEvent(domain.EventBookingAccepted, b, time.Now())

	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(ch.published) != 1 {
		t.Fatalf("expected one message, got %d", len(ch.published))
	}
	msg := ch.published[0]
	if msg.exchange != "driveu.bookings" || msg.key != "booking.accepted" {
		t.Errorf("unexpected routing %s/%s", msg.exchange, msg.key)
	}
	if msg.msg.DeliveryMode != amqp091.Persistent {
		t.Errorf("expected persistent delivery")
	}

	var decoded map[string]any
	if err := json.Unmarshal(msg.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["booking_id"] != "b-1" {
		t.Errorf("unexpected body %v", decoded)
	}
	if _, leaked := decoded["otp"]; leaked {
		t.Error("event body must not carry the OTP")
	}
}

func TestPublisher_WrapsErrors(t *testing.T) {
	boom := errors.New("channel closed")

	if _, err := NewPublisher(&fakeChannel{declareErr: boom}, "x", discardLogger()); !errors.Is(err, boom) {
		t.Errorf("expected declare error to be wrapped, got %v", err)
	}

	p, _ := NewPublisher(&fakeChannel{publishErr: boom}, "x", discardLogger())
	err := p.Publish(context.Background(), domain.BookingEvent{Type: domain.EventTripStarted})
	if !errors.Is(err, boom) {
		t.Errorf("expected publish error to be wrapped, got %v", err)
	}
}
