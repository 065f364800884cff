package main

import (
	"fmt"

	"interview-booking-api/internal/middleware"
)

// configure all middleware for the router, in request order
func (a *App) setupMiddleware() error {
	// Proxy trust has to be in place before anything reads ClientIP
	if err := a.Router.SetTrustedProxies(a.Config.Server.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	a.Router.ForwardedByClientIP = true

	a.Router.Use(middleware.Recovery())
	a.Router.Use(middleware.RequestID())
	a.Router.Use(middleware.MetricsMiddleware())

	a.Router.Use(middleware.CORS())
	a.Router.Use(middleware.BodyParser(a.Config.Server.BodyLimit))
	a.Router.Use(middleware.MongoSanitize())
	a.Router.Use(middleware.SecureHeaders())
	a.Router.Use(middleware.XSSClean())
	a.Router.Use(middleware.LoggingMiddleware())
	a.Router.Use(middleware.RateLimit(a.RateLimiter))
	a.Router.Use(middleware.HPP())
	a.Router.Use(middleware.CookieParser())
	a.Router.Use(middleware.ErrorHandler())
	return nil
}
