package jira

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultScheme is the scheme used for Jira Cloud sites.
	DefaultScheme = "https"
	// DefaultHostSuffix is appended to the org subdomain.
	DefaultHostSuffix = "atlassian.net"
	// SearchPath is the REST v3 search resource.
	SearchPath = "/rest/api/3/search"
)

// AllFields requests every field of each returned issue.
var AllFields = []string{"*all"}

// SearchRequest is the JSON body posted to the search endpoint.
type SearchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

// NewSearchRequest builds a search body selecting all fields.
func NewSearchRequest(jql string, maxResults int) SearchRequest {
	return SearchRequest{
		JQL:        jql,
		MaxResults: maxResults,
		Fields:     AllFields,
	}
}

// Response is the raw upstream answer, whatever its status.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Endpoint derives the search URL for an org subdomain.
type Endpoint struct {
	Scheme     string
	HostSuffix string
}

// SearchURL returns "<scheme>://<domain>.<suffix>/rest/api/3/search".
// The domain is not validated; characters that are illegal in a host are
// escaped, so such domains fail when the request is built or dialed.
func (e Endpoint) SearchURL(domain string) string {
	scheme := e.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	suffix := strings.Trim(e.HostSuffix, ".")
	if suffix == "" {
		suffix = DefaultHostSuffix
	}
	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s.%s", domain, suffix),
		Path:   SearchPath,
	}
	return u.String()
}
