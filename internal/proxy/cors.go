package proxy

import (
	"net/http"
	"strings"

	"github.com/gi8lino/jiraview/internal/config"
)

// corsPolicy renders the configured cross-origin headers.
type corsPolicy struct {
	anyOrigin bool
	origins   map[string]bool
	suffixes  []string // from "*.example.com" entries, stored as ".example.com"
	methods   string
	headers   string
}

// newCORSPolicy precomputes the header values of cfg.
func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	p := corsPolicy{
		origins: make(map[string]bool, len(cfg.AllowOrigins)),
		methods: strings.Join(cfg.AllowMethods, ", "),
		headers: strings.Join(cfg.AllowHeaders, ", "),
	}
	if cfg.AllowsAnyOrigin() {
		p.anyOrigin = true
		return p
	}
	for _, o := range cfg.AllowOrigins {
		o = strings.ToLower(strings.TrimSpace(o))
		switch {
		case strings.HasPrefix(o, "*."):
			p.suffixes = append(p.suffixes, strings.TrimPrefix(o, "*"))
		default:
			p.origins[strings.TrimRight(o, "/")] = true
		}
	}
	return p
}

// apply sets the CORS headers for a request from origin.
// Disallowed origins get no Access-Control-Allow-Origin, so browsers block the response.
func (p corsPolicy) apply(h http.Header, origin string) {
	switch {
	case p.anyOrigin:
		h.Set("Access-Control-Allow-Origin", "*")
	case origin != "" && p.allowed(origin):
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
	}
	if p.methods != "" {
		h.Set("Access-Control-Allow-Methods", p.methods)
	}
	if p.headers != "" {
		h.Set("Access-Control-Allow-Headers", p.headers)
	}
}

// allowed reports whether origin matches an explicit origin or a subdomain pattern.
func (p corsPolicy) allowed(origin string) bool {
	o := strings.ToLower(origin)
	if p.origins[o] {
		return true
	}

	host := o
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	for _, suffix := range p.suffixes {
		// "*.example.com" matches "a.example.com" but not "example.com" or "notexample.com"
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}
