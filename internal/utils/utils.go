package utils

import (
	"net/url"
	"strings"
)

// ObfuscateEmail masks the local part of an email address for logging,
// keeping its first two characters and the domain.
// Example: "alice@example.com" -> "al***@example.com"
func ObfuscateEmail(email string) string {
	if email == "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "[invalid email]"
	}

	local, domain := email[:at], email[at+1:]
	n := len(local)
	if n <= 2 {
		return strings.Repeat("*", n) + "@" + domain
	}
	return local[:2] + strings.Repeat("*", n-2) + "@" + domain
}

// NormalizeRoutePrefix returns "" or "/prefix" from input, accepting raw paths or full URLs.
func NormalizeRoutePrefix(input string) string {
	s := strings.TrimSpace(input)
	if s == "" || s == "/" {
		return ""
	}
	// keep only the path of a full URL
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}
