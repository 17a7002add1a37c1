package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amaumene/mainstream/internal/config"
	"github.com/amaumene/mainstream/internal/constants"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mainstream: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mainstream: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		a.log.Errorf("[App] %v", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts the server down.
func (a *app) run(ctx context.Context) error {
	a.container.Cleanup.Start(ctx)
	go a.sweepLimiter(ctx)

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.router,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("[App] starting HTTP server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Infof("[App] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweepLimiter drops idle clients from the proxy rate limiter.
func (a *app) sweepLimiter(ctx context.Context) {
	limiter := a.handler.Limiter()
	if limiter == nil {
		return
	}

	ticker := time.NewTicker(constants.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(); n > 0 {
				a.log.Debugf("[App] swept %d idle rate limiter entries", n)
			}
		}
	}
}
