// Package supervisor runs the HTTP listener together with the process's
// background tasks and turns any unhandled failure into an orderly shutdown.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"interview-booking-api/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task is a background job. It must return when ctx is done; a non-nil
// return value is treated as a fatal failure.
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	fn   Task
}

// Supervisor owns the listener lifecycle.
type Supervisor struct {
	server          *http.Server
	shutdownTimeout time.Duration
	tasks           []namedTask
	cleanups        []func()
}

// New supervises srv. In-flight requests get shutdownTimeout to drain.
func New(srv *http.Server, shutdownTimeout time.Duration) *Supervisor {
	return &Supervisor{server: srv, shutdownTimeout: shutdownTimeout}
}

// Go registers a background task. Call before Run.
func (s *Supervisor) Go(name string, fn Task) {
	s.tasks = append(s.tasks, namedTask{name: name, fn: fn})
}

// OnShutdown registers fn to run after the listener has drained, in reverse
// registration order.
func (s *Supervisor) OnShutdown(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Run serves on ln until ctx is cancelled or something fails. It returns nil
// after a requested shutdown and the first failure otherwise; in both cases
// the listener is closed, in-flight requests are drained and the cleanups
// have run.
func (s *Supervisor) Run(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listener: %w", err)
		}
		return nil
	})

	for _, t := range s.tasks {
		t := t
		g.Go(func() error { return runTask(gctx, t) })
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			_ = s.server.Close()
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}

	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTask(ctx context.Context, t namedTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.GlobalLogger.Debugf("panic in %s: %s", t.name, debug.Stack())
			err = fmt.Errorf("%s: panic: %v", t.name, r)
		}
	}()

	if err := t.fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	return nil
}
