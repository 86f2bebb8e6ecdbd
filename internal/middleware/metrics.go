package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
// The returned middleware is registered on the app and serves /metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
