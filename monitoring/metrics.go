package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_actions_total",
			Help: "Server actions by name and outcome",
		},
		[]string{"action", "outcome"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_exports_total",
			Help: "Generated export files by format",
		},
		[]string{"format"},
	)

	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_export_duration_seconds",
			Help:    "Time spent rendering export files",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"format"},
	)

	messagesDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_messages_dispatched_total",
			Help: "Personalized message links handed out",
		},
	)

	viewCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_view_cache_lookups_total",
			Help: "View cache lookups by result",
		},
		[]string{"result"},
	)

	redisUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_redis_up",
			Help: "1 when the last Redis ping succeeded",
		},
	)
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// TrackAction counts one server action.
func TrackAction(action string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	actionsTotal.WithLabelValues(action, outcome).Inc()
}

func TrackExport(format string, duration time.Duration) {
	exportsTotal.WithLabelValues(format).Inc()
	exportDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func TrackMessageDispatch() {
	messagesDispatched.Inc()
}

func TrackViewCache(hit bool) {
	if hit {
		viewCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	viewCacheLookups.WithLabelValues("miss").Inc()
}

// Monitor periodically pings Redis and exports the result.
type Monitor struct {
	redis    redis.Cmdable
	interval time.Duration
}

func NewMonitor(redisClient redis.Cmdable, interval time.Duration) *Monitor {
	return &Monitor{redis: redisClient, interval: interval}
}

// Run blocks until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collect(ctx)
		}
	}
}

func (m *Monitor) collect(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := m.redis.Ping(ctx).Err(); err != nil {
		redisUp.Set(0)
		return
	}
	redisUp.Set(1)
}
