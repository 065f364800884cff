// @title Library API
// @version 1.0.0
// @description Job Interview Booking API
// @BasePath /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"interview-booking-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		logger.GlobalLogger.Errorf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfiguration()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
