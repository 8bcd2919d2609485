package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// EngagementTotal counts like and share increments by kind.
	EngagementTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_engagement_total",
		Help: "Total number of like/share increments",
	}, []string{"kind"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "socialfeed_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EventsPublished counts domain events handed to the event backend.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_events_published_total",
		Help: "Total number of domain events published",
	}, []string{"backend", "type", "status"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})
)

// Engagement kinds.
const (
	KindPostLike    = "post_like"
	KindPostShare   = "post_share"
	KindCommentLike = "comment_like"
)

const queryStartKey = "observability:query_start"

// QueryMetricsPlugin is a GORM plugin recording per-statement latency into DatabaseQueryLatency.
type QueryMetricsPlugin struct{}

// Name implements gorm.Plugin.
func (QueryMetricsPlugin) Name() string {
	return "observability:query_metrics"
}

// Initialize implements gorm.Plugin.
func (QueryMetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("observability:before_create", markStart); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("observability:after_create", observe("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("observability:before_query", markStart); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("observability:after_query", observe("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("observability:before_update", markStart); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("observability:after_update", observe("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("observability:before_delete", markStart); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("observability:after_delete", observe("delete"))
}

func markStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func observe(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
