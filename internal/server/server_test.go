package server_test

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gi8lino/jiraview/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHTTPServer(t *testing.T) {
	t.Parallel()

	t.Run("shuts down on context cancel", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- server.RunHTTPServer(ctx, http.NotFoundHandler(), "127.0.0.1:0", 0, slog.New(slog.DiscardHandler))
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("returns listen error", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close() // nolint:errcheck

		err = server.RunHTTPServer(context.Background(), http.NotFoundHandler(), ln.Addr().String(), time.Second, slog.New(slog.DiscardHandler))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
	})
}

func TestWriteTimeout(t *testing.T) {
	t.Parallel()

	t.Run("outlasts the upstream timeout", func(t *testing.T) {
		t.Parallel()

		for _, upstream := range []time.Duration{time.Second, 30 * time.Second, 90 * time.Second, 10 * time.Minute} {
			got := server.WriteTimeout(upstream)
			assert.Greater(t, got, upstream, upstream.String())
		}
	})

	t.Run("disabled upstream timeout disables the write deadline", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, time.Duration(0), server.WriteTimeout(0))
	})
}
