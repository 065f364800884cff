package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"interview-booking-api/docs"
	"interview-booking-api/pkg/logger"
	"interview-booking-api/pkg/supervisor"
)

// create the HTTP server
func (a *App) InitializeServer() {
	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: a.Config.Server.ReadTimeout,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		WriteTimeout:      a.Config.Server.WriteTimeout,
		IdleTimeout:       a.Config.Server.IdleTimeout,
	}
}

// Run binds the port and serves until ctx is cancelled (nil) or a
// supervised task or the listener fails (the failure). Either way the
// listener is drained and the database handles are released.
func (a *App) Run(ctx context.Context) error {
	a.InitializeServer()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		a.cleanup()
		return fmt.Errorf("failed to bind %s: %w", a.Server.Addr, err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", port)
	logger.GlobalLogger.Printf("Server running in %s mode on http://localhost:%d", a.Config.Env, port)
	logger.GlobalLogger.Printf("Swagger UI available at: http://localhost:%d/api-docs", port)

	sup := supervisor.New(a.Server, a.Config.Server.ShutdownTimeout)
	for _, t := range a.tasks {
		sup.Go(t.name, t.fn)
	}
	sup.OnShutdown(a.cleanup)

	if err := sup.Run(ctx, ln); err != nil {
		return err
	}
	logger.GlobalLogger.Println("Server exited")
	return nil
}
