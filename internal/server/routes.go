package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gi8lino/jiraview/internal/config"
	"github.com/gi8lino/jiraview/internal/handlers"
	"github.com/gi8lino/jiraview/internal/metrics"
	"github.com/gi8lino/jiraview/internal/middleware"
)

// NewRouter creates a new HTTP router.
func NewRouter(
	webFS fs.FS,
	cfg config.ProxyConfig,
	proxyHandler http.Handler,
	m *metrics.Metrics,
	logger *slog.Logger,
	debug bool,
	version string,
	routePrefix string,
) http.Handler {
	root := http.NewServeMux()

	// Serve embedded static files
	staticContent, _ := fs.Sub(webFS, "web/static")
	fileServer := http.FileServer(http.FS(staticContent))
	root.Handle("GET /static/", http.StripPrefix("/static/", fileServer))

	// Health checks (no logging)
	root.Handle("GET /healthz", handlers.Healthz())
	root.Handle("POST /healthz", handlers.Healthz())

	if m != nil {
		root.Handle("GET /metrics", m.Handler())
	}

	// Viewer page (with optional logging)
	var viewer http.Handler = handlers.ViewerHandler(webFS, version, routePrefix, cfg, logger)
	if debug {
		viewer = middleware.Chain(viewer, middleware.RequestID(), middleware.LoggingMiddleware(logger))
	}
	root.Handle("GET /{$}", viewer)

	// Proxy answers every method itself (preflight, 405).
	root.Handle(cfg.Endpoint, middleware.Chain(proxyHandler,
		middleware.RequestID(),
		middleware.LoggingMiddleware(logger),
	))

	return mountUnderPrefix(root, routePrefix)
}
