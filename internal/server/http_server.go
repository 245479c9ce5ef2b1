package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kindling-app/kindling-backend/internal/config"
	"github.com/kindling-app/kindling-backend/internal/logger"
)

// StartHTTPServer boots the HTTP server with the given handler and blocks
// until ctx is canceled, then drains in-flight requests before returning.
func StartHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTPHost, cfg.HTTPPort)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
