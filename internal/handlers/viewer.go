package handlers

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gi8lino/jiraview/internal/config"
	"github.com/gi8lino/jiraview/internal/hash"
	"github.com/gi8lino/jiraview/internal/proxy"
	"github.com/gi8lino/jiraview/internal/templates"
)

// ViewerTitle is the heading of the issue viewer page.
const ViewerTitle = "Jira Ticket Queue"

// ViewerHandler renders the issue viewer page. The page only talks to the
// proxy endpoint; credentials never pass through this handler.
func ViewerHandler(
	webFS fs.FS,
	version string,
	routePrefix string,
	cfg config.ProxyConfig,
	logger *slog.Logger,
) http.HandlerFunc {
	baseTmpl := templates.ParseBaseTemplates(webFS, templates.TemplateFuncMap())

	data := map[string]any{
		"Title":             ViewerTitle,
		"Version":           version,
		"RoutePrefix":       routePrefix,
		"Endpoint":          cfg.Endpoint,
		"Scheme":            cfg.Upstream.Scheme,
		"HostSuffix":        cfg.Upstream.HostSuffix,
		"DefaultMaxResults": proxy.DefaultMaxResults,
		"MaxResultsLimit":   proxy.MaxResultsLimit,
	}

	// The page depends only on data, so its tag is fixed for the process lifetime.
	etag, err := hash.ETag(data)
	if err != nil {
		logger.Warn("viewer etag disabled", "error", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if etag != "" {
			w.Header().Set("ETag", etag)
			if hash.Matches(r.Header.Get("If-None-Match"), etag) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}

		var buf bytes.Buffer
		if err := baseTmpl.ExecuteTemplate(&buf, "base", data); err != nil {
			logger.Error("render viewer", "error", err)
			w.Header().Del("ETag")
			renderErrorPage(w, http.StatusInternalServerError, baseTmpl, "Error", "Failed to render viewer.", err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) // nolint:errcheck
	}
}
