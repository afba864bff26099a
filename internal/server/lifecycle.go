// Package server provides application lifecycle management including
// graceful startup and shutdown with signal handling.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service represents a long-running component that can be started and stopped.
type Service interface {
	// Name identifies the service in logs.
	Name() string
	// Start begins the service. It should block until the service is stopped
	// or an error occurs.
	Start() error
	// Stop gracefully stops the service, unblocking Start.
	Stop()
}

// Lifecycle starts services in registration order and stops them in reverse
// order on SIGINT/SIGTERM, context cancellation, or the first service error.
type Lifecycle struct {
	logger   *zap.Logger
	services []Service
}

// NewLifecycle creates a Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger, services ...Service) *Lifecycle {
	return &Lifecycle{logger: logger, services: services}
}

// Add registers a service. Not safe to call after Run has started.
//
// Precondition: svc must be non-nil.
func (l *Lifecycle) Add(svc Service) {
	l.services = append(l.services, svc)
}

// Run starts all services and blocks until a termination signal arrives, ctx
// is cancelled, or a service fails.
//
// Postcondition: All started services have been stopped when Run returns.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(l.services))
	for _, svc := range l.services {
		svc := svc
		go func() {
			l.logger.Info("starting service", zap.String("service", svc.Name()))
			if err := svc.Start(); err != nil {
				errCh <- fmt.Errorf("service %s: %w", svc.Name(), err)
			}
		}()
	}
	l.logger.Info("all services started",
		zap.Int("count", len(l.services)),
		zap.Duration("startup", time.Since(start)),
	)

	var runErr error
	select {
	case <-ctx.Done():
		l.logger.Info("shutdown requested")
	case runErr = <-errCh:
		l.logger.Error("service failed, shutting down", zap.Error(runErr))
	}

	for i := len(l.services) - 1; i >= 0; i-- {
		svc := l.services[i]
		stopStart := time.Now()
		svc.Stop()
		l.logger.Info("service stopped",
			zap.String("service", svc.Name()),
			zap.Duration("elapsed", time.Since(stopStart)),
		)
	}

	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return runErr
}
