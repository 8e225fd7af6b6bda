package config

import (
	"strings"
	"time"
)

// ProxyConfig is the immutable runtime configuration of the proxy.
type ProxyConfig struct {
	Endpoint string         `yaml:"endpoint"` // inbound path of the proxy
	CORS     CORSConfig     `yaml:"cors"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Server   ServerConfig   `yaml:"server"`
}

// CORSConfig is the cross-origin policy applied to every proxy response.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"` // "*" or explicit origins; "*.example.com" matches subdomains
	AllowMethods []string `yaml:"allowMethods"`
	AllowHeaders []string `yaml:"allowHeaders"`
}

// UpstreamConfig controls how the Jira search URL is built and called.
type UpstreamConfig struct {
	Scheme        string         `yaml:"scheme"`
	HostSuffix    string         `yaml:"hostSuffix"`
	Timeout       *time.Duration `yaml:"timeout"` // nil = default, 0 = no client timeout
	SkipTLSVerify bool           `yaml:"skipTLSVerify"`
}

// ServerConfig holds inbound request limits.
type ServerConfig struct {
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`
}

// AllowsAnyOrigin reports whether the wildcard origin is configured.
func (c CORSConfig) AllowsAnyOrigin() bool {
	for _, o := range c.AllowOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
