package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gi8lino/jiraview/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("first middleware is outermost", func(t *testing.T) {
		t.Parallel()

		var order []string
		mark := func(name string) middleware.Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}
		h := middleware.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}), mark("a"), mark("b"))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"a", "b", "handler"}, order)
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an id when absent", func(t *testing.T) {
		t.Parallel()

		var seen string
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		t.Parallel()

		var seen string
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("logs status and level by class", func(t *testing.T) {
		t.Parallel()

		cases := map[int]string{
			http.StatusOK:                  "INFO",
			http.StatusBadRequest:          "WARN",
			http.StatusInternalServerError: "ERROR",
		}
		for status, level := range cases {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			h := middleware.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}), middleware.RequestID(), middleware.LoggingMiddleware(logger))

			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"token":"secret"}`))
			h.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, level, entry["level"])
			assert.Equal(t, float64(status), entry["status"])
			assert.Equal(t, "POST", entry["method"])
			assert.Equal(t, "/x", entry["path"])
			assert.NotEmpty(t, entry["request_id"])
			assert.NotContains(t, buf.String(), "secret")
		}
	})

	t.Run("implicit 200 on write", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		h := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok")) // nolint:errcheck
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Contains(t, buf.String(), `"status":200`)
	})
}
