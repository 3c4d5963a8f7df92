// AngelaMos | 2026
// metrics.go

package core

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recraft_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recraft_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recraft_orders_placed_total",
		Help: "Total orders persisted",
	})

	OrderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recraft_order_failures_total",
		Help: "Order placements rejected, by reason",
	}, []string{"reason"})

	StockDecremented = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recraft_stock_units_decremented_total",
		Help: "Product units removed from stock by orders",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recraft_cache_lookups_total",
		Help: "Listing cache lookups by key prefix and result",
	}, []string{"key", "result"})

	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recraft_redis_errors_total",
		Help: "Redis command errors by command name",
	}, []string{"command"})

	RequestsThrottled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recraft_requests_throttled_total",
		Help: "Requests rejected with 429 by throttle name",
	}, []string{"throttle"})
)

// RegisterPoolMetrics exposes connection pool gauges for the database and
// Redis clients. Call it once per process.
func RegisterPoolMetrics(db func() sql.DBStats, rdb func() *redis.PoolStats) {
	gauge := func(name, help string, value func() float64) {
		promauto.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, value)
	}

	gauge("recraft_db_open_connections", "Open database connections",
		func() float64 { return float64(db().OpenConnections) })
	gauge("recraft_db_in_use_connections", "Database connections in use",
		func() float64 { return float64(db().InUse) })
	gauge("recraft_db_idle_connections", "Idle database connections",
		func() float64 { return float64(db().Idle) })
	gauge("recraft_db_wait_count", "Connections waited for",
		func() float64 { return float64(db().WaitCount) })

	gauge("recraft_redis_total_connections", "Redis pool connections",
		func() float64 { return float64(rdb().TotalConns) })
	gauge("recraft_redis_idle_connections", "Idle Redis pool connections",
		func() float64 { return float64(rdb().IdleConns) })
	gauge("recraft_redis_pool_timeouts", "Redis pool wait timeouts",
		func() float64 { return float64(rdb().Timeouts) })
}
