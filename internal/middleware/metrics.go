package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommentsSubmitted counts comment submissions by outcome (accepted, rejected).
	CommentsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churchvlog_comments_submitted_total",
		Help: "Total comment submissions by outcome",
	}, []string{"outcome"})

	// DeviceBans counts ban-list mutations by action (ban, unban).
	DeviceBans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churchvlog_device_bans_total",
		Help: "Total device ban list mutations by action",
	}, []string{"action"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churchvlog_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
