package config

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/containeroo/resolver"
	"gopkg.in/yaml.v3"
)

// Defaults target Jira Cloud behind the Netlify function path.
const (
	DefaultEndpoint     = "/.netlify/functions/jira"
	DefaultScheme       = "https"
	DefaultHostSuffix   = "atlassian.net"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = int64(1 << 20)
)

// Paths served by the router itself; the proxy endpoint must not shadow them.
var reservedPaths = []string{"/healthz", "/metrics", "/static/"}

// LoadConfig reads the YAML config at path. An empty path yields an empty config
// that ValidateConfig fills with defaults.
func LoadConfig(path string) (ProxyConfig, error) {
	cfg := ProxyConfig{}
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	defer f.Close() // nolint:errcheck

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := resolveValues(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// resolveValues expands references such as "env:VAR" or "file:path" in string fields.
func resolveValues(cfg *ProxyConfig) error {
	fields := map[string]*string{
		"endpoint":            &cfg.Endpoint,
		"upstream.scheme":     &cfg.Upstream.Scheme,
		"upstream.hostSuffix": &cfg.Upstream.HostSuffix,
	}
	for name, ptr := range fields {
		v, err := resolver.ResolveVariable(*ptr)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", name, err)
		}
		*ptr = v
	}

	for i, origin := range cfg.CORS.AllowOrigins {
		v, err := resolver.ResolveVariable(origin)
		if err != nil {
			return fmt.Errorf("resolve cors.allowOrigins[%d]: %w", i, err)
		}
		cfg.CORS.AllowOrigins[i] = v
	}
	return nil
}

// ValidateConfig checks the config and fills in defaults for unset fields.
func ValidateConfig(cfg *ProxyConfig) error {
	var errs []string

	if ep := cfg.Endpoint; ep != "" {
		switch {
		case !strings.HasPrefix(ep, "/"):
			errs = append(errs, fmt.Sprintf("endpoint %q must start with \"/\"", ep))
		case ep == "/":
			errs = append(errs, "endpoint must not be \"/\"")
		case strings.ContainsAny(ep, "{} \t"):
			errs = append(errs, fmt.Sprintf("endpoint %q must not contain braces or whitespace", ep))
		case isReserved(ep):
			errs = append(errs, fmt.Sprintf("endpoint %q collides with a built-in route", ep))
		}
	}

	for i, origin := range cfg.CORS.AllowOrigins {
		o := strings.TrimSpace(origin)
		switch {
		case o == "":
			errs = append(errs, fmt.Sprintf("cors.allowOrigins[%d]: must not be empty", i))
		case o == "*", strings.HasPrefix(o, "*."), strings.Contains(o, "://"):
		default:
			errs = append(errs, fmt.Sprintf("cors.allowOrigins[%d]: %q must be \"*\", \"*.domain\" or include a scheme", i, o))
		}
	}

	for i, m := range cfg.CORS.AllowMethods {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, fmt.Sprintf("cors.allowMethods[%d]: must not be empty", i))
		}
	}

	switch s := strings.ToLower(cfg.Upstream.Scheme); s {
	case "", "http", "https":
	default:
		errs = append(errs, fmt.Sprintf("upstream.scheme %q must be http or https", cfg.Upstream.Scheme))
	}

	if strings.ContainsAny(cfg.Upstream.HostSuffix, "/:@?# ") {
		errs = append(errs, fmt.Sprintf("upstream.hostSuffix %q must be a bare host name", cfg.Upstream.HostSuffix))
	}

	if cfg.Upstream.Timeout != nil && *cfg.Upstream.Timeout < 0 {
		errs = append(errs, "upstream.timeout must be >= 0")
	}

	if cfg.Server.MaxBodyBytes < 0 {
		errs = append(errs, "server.maxBodyBytes must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	setDefaults(cfg)

	return nil
}

// isReserved reports whether ep shadows a router-owned path.
func isReserved(ep string) bool {
	for _, p := range reservedPaths {
		if ep == strings.TrimSuffix(p, "/") || strings.HasPrefix(ep, p) {
			return true
		}
	}
	return false
}

// setDefaults fills in missing fields with default values.
func setDefaults(cfg *ProxyConfig) {
	setDefault(&cfg.Endpoint, DefaultEndpoint)
	setDefault(&cfg.Upstream.Scheme, DefaultScheme)
	setDefault(&cfg.Upstream.HostSuffix, DefaultHostSuffix)
	cfg.Upstream.Scheme = strings.ToLower(cfg.Upstream.Scheme)

	if len(cfg.CORS.AllowOrigins) == 0 {
		cfg.CORS.AllowOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowMethods) == 0 {
		cfg.CORS.AllowMethods = []string{http.MethodPost, http.MethodOptions}
	}
	if len(cfg.CORS.AllowHeaders) == 0 {
		cfg.CORS.AllowHeaders = []string{"Content-Type"}
	}

	if cfg.Upstream.Timeout == nil {
		d := DefaultTimeout
		cfg.Upstream.Timeout = &d
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// setDefault assigns dst to val only if *dst is empty.
func setDefault(dst *string, val string) {
	if *dst == "" {
		*dst = val
	}
}
