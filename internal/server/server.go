// Package server owns the listen-and-serve lifecycle: boot external
// connections, bind the port, and drain in-flight requests on shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/cache"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/storage"
)

// Start boots config, Redis and storage, then serves handler until SIGINT or
// SIGTERM. In-flight requests get up to 15 seconds to drain.
func Start(handler http.Handler) error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		// Sessions and the product cache degrade gracefully without Redis.
		logger.Warn("redis unavailable, sessions will not persist", "error", err)
	}
	storage.Connect()

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("shakkar listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
