// internal/api/routes.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with middleware and every route.
// metrics may be nil.
func NewServer(h *Handler, metrics http.Handler, log *slog.Logger) *echo.Echo {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "api"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/api/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			)
			return nil
		},
	}))

	RegisterRoutes(e, h, metrics)
	return e
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler, metrics http.Handler) {
	g := e.Group("/api")

	g.GET("/health", h.HandleHealth)

	g.GET("/status", h.HandleStatus)
	g.GET("/status/msgpack", h.HandleStatusMsgpack)

	g.POST("/poll", h.HandleTriggerPoll)
	g.PUT("/interval", h.HandleSetInterval)

	g.GET("/insights/history", h.HandleHistory)
	g.POST("/insights/predict", h.HandlePredict)

	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}
