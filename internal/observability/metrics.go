package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sensei_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreatedTotal counts created community posts by category.
	PostsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_posts_created_total",
		Help: "Total number of community posts created",
	}, []string{"category"})

	// CommentsCreatedTotal counts created comments and replies by depth.
	CommentsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_comments_created_total",
		Help: "Total number of comments and replies created",
	}, []string{"depth"})

	// ReactionsToggledTotal counts reaction toggles by subject type and outcome.
	ReactionsToggledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_reactions_toggled_total",
		Help: "Total number of reaction toggles by subject and outcome",
	}, []string{"subject", "outcome"})

	// FeedRequestsTotal counts feed reads by whether a filter was applied.
	FeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_feed_requests_total",
		Help: "Total number of feed requests",
	}, []string{"filtered"})

	// CacheRequestsTotal counts cache lookups by key class and result.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sensei_cache_requests_total",
		Help: "Total cache lookups by key class and hit/miss result",
	}, []string{"key", "result"})
)

// Reaction toggle outcomes for ReactionsToggledTotal.
const (
	ReactionOutcomeAdded   = "added"
	ReactionOutcomeRemoved = "removed"
	ReactionOutcomeFlipped = "flipped"
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCacheHit increments the cache counter with a hit result.
func RecordCacheHit(key string) {
	CacheRequestsTotal.WithLabelValues(key, "hit").Inc()
}

// RecordCacheMiss increments the cache counter with a miss result.
func RecordCacheMiss(key string) {
	CacheRequestsTotal.WithLabelValues(key, "miss").Inc()
}
