// Command main tails the Redis event channel and logs every event the API publishes.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"socialfeed/internal/config"
	"socialfeed/internal/middleware"
	"socialfeed/internal/notifications"
)

func main() {
	channel := flag.String("channel", notifications.DefaultChannel, "Redis pub/sub channel to tail")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.EventsBackend != config.EventsRedis {
		middleware.Logger.Warn("EVENTS_BACKEND is not redis; the API may not publish to this channel",
			slog.String("backend", cfg.EventsBackend))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := notifications.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	sub := notifications.NewRedisPublisher(rdb, *channel)
	defer func() { _ = sub.Close() }()

	if err := sub.Subscribe(ctx, notifications.EventLogger(middleware.Logger)); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}
	middleware.Logger.Info("Tailing events", slog.String("channel", *channel))

	<-ctx.Done()
	middleware.Logger.Info("Stopped tailing events")
}
