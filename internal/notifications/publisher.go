package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"socialfeed/internal/config"
	"socialfeed/internal/middleware"
	"socialfeed/internal/observability"
)

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Ping(ctx context.Context) error
	Backend() string
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Ping(context.Context) error           { return nil }
func (NopPublisher) Backend() string                      { return config.EventsNone }
func (NopPublisher) Close() error                         { return nil }

// NewPublisher returns the publisher selected by cfg.EventsBackend.
func NewPublisher(ctx context.Context, cfg *config.Config) (Publisher, error) {
	switch cfg.EventsBackend {
	case config.EventsRedis:
		rdb, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisPublisher(rdb, DefaultChannel), nil
	case config.EventsAMQP:
		return DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	case config.EventsNone, "":
		return NopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unsupported events backend %q", cfg.EventsBackend)
	}
}

// Emit publishes event and only logs a failure; callers never fail a request because of it.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	status := "ok"
	if err := p.Publish(ctx, event); err != nil {
		status = "error"
		middleware.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", event.Type),
			slog.String("backend", p.Backend()),
			slog.Uint64("post_id", uint64(event.PostID)),
			slog.String("error", err.Error()),
		)
	}
	observability.EventsPublished.WithLabelValues(p.Backend(), event.Type, status).Inc()
}
