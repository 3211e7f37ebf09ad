package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// registerRoutes installs middleware outermost first. Metrics sit outside
// error handling so they see the status code that was actually written.
func (s *Server) registerRoutes() {
	s.echo.Use(correlationMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	if s.httpMetrics != nil {
		s.echo.Use(s.httpMetrics.Middleware())
	}
	s.echo.Use(ErrorHandlingMiddleware())
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	}))

	writeLimit := newRateLimiter(s.config.RateLimitPerSecond, s.config.RateLimitBurst)

	s.registerHealthRoutes()
	s.registerPollRoutes(writeLimit)

	if s.metricsHandler != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metricsHandler))
	}
}

func (s *Server) registerPollRoutes(writeLimit echo.MiddlewareFunc) {
	s.echo.POST("/create_poll/", s.handleCreatePoll, writeLimit)
	s.echo.GET("/get_polls/", s.handleListPolls)
	s.echo.POST("/submit_response/", s.handleSubmitResponse, writeLimit)
	s.echo.GET("/get_results/:poll_id", s.handleGetResults)

	api := s.echo.Group("/api/polls")
	api.POST("", s.handleCreatePoll, writeLimit)
	api.GET("", s.handleListPolls)
	api.POST("/:poll_id/responses", s.handleSubmitPollResponse, writeLimit)
	api.GET("/:poll_id/results", s.handleGetResults)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
