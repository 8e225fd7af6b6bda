package templates

import (
	"html/template"
	"strings"

	"github.com/Masterminds/sprig/v3"
)

// TemplateFuncMap returns all helper functions for templates.
func TemplateFuncMap() template.FuncMap {
	fm := sprig.HtmlFuncMap()
	fm["prefixed"] = prefixed
	fm["siteURL"] = siteURL
	return fm
}

// prefixed joins a route prefix ("" or "/x") with an absolute path.
func prefixed(prefix, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(prefix, "/") + p
}

// siteURL renders the Jira site for an org placeholder, e.g. https://yourcompany.atlassian.net.
func siteURL(scheme, org, hostSuffix string) string {
	if org == "" {
		org = "yourcompany"
	}
	return scheme + "://" + org + "." + hostSuffix
}
