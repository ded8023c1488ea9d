package app

import (
	"context"
	"io"
	"log/slog"

	"driveu/internal/broker"
	"driveu/internal/config"
	"driveu/internal/service"
)

const brokerDialAttempts = 5

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewNotifier returns the RabbitMQ publisher when the broker is enabled and
// the log notifier otherwise. The returned closer releases the connection.
func NewNotifier(ctx context.Context, cfg config.RabbitMQConfig, log *slog.Logger) (service.Notifier, io.Closer, error) {
	if !cfg.Enabled {
		log.Info("rabbitmq disabled, booking events are logged only")
		return service.NewLogNotifier(log), closerFunc(func() error { return nil }), nil
	}

	conn, ch, err := broker.Dial(ctx, cfg.URL, brokerDialAttempts, log)
	if err != nil {
		return nil, nil, err
	}

	pub, err := broker.NewPublisher(ch, cfg.Exchange, log)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	log.Info("connected to rabbitmq", "exchange", cfg.Exchange)
	return pub, closerFunc(func() error {
		pub.Close()
		return conn.Close()
	}), nil
}
