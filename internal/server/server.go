package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// writeTimeoutMargin is the time left after the upstream deadline to write the response.
const writeTimeoutMargin = 15 * time.Second

// WriteTimeout returns the response write deadline for a given upstream timeout.
// An upstream timeout of 0 means no deadline, so the server gets none either.
func WriteTimeout(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		return 0
	}
	return upstream + writeTimeoutMargin
}

// newHTTPServer builds the server used by RunHTTPServer.
func newHTTPServer(handler http.Handler, addr string, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// RunHTTPServer starts the HTTP server and handles shutdown on context cancellation.
// It returns the listen error if the server fails before ctx is done.
func RunHTTPServer(ctx context.Context, handler http.Handler, addr string, writeTimeout time.Duration, logger *slog.Logger) error {
	httpServer := newHTTPServer(handler, addr, writeTimeout)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "err", err)
		return err
	}

	return nil
}
