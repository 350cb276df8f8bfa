package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darasa_http_requests_total",
			Help: "HTTP requests served, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darasa_http_errors_total",
			Help: "HTTP error responses, by status text.",
		},
		[]string{"status"},
	)
)

func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)
			status := ctx.Response().Status
			if err != nil {
				if herr, ok := err.(*echo.HTTPError); ok {
					status = herr.Code
				}
			}
			requestsTotal.WithLabelValues(ctx.Request().Method, ctx.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}
