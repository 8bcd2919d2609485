package notifications

import (
	"log/slog"
	"time"
)

// EventLogger returns a Subscribe callback that writes one structured record per event.
func EventLogger(l *slog.Logger) func(Event) {
	return func(e Event) {
		attrs := []any{
			slog.String("id", e.ID),
			slog.String("type", e.Type),
			slog.Uint64("post_id", uint64(e.PostID)),
			slog.Time("occurred_at", e.OccurredAt),
			slog.Duration("lag", time.Since(e.OccurredAt)),
		}
		if e.CommentID != nil {
			attrs = append(attrs, slog.Uint64("comment_id", uint64(*e.CommentID)))
		}
		if e.Payload != nil {
			attrs = append(attrs, slog.Any("payload", e.Payload))
		}
		l.Info("event received", attrs...)
	}
}
