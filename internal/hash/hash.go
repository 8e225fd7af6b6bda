package hash

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
)

// ETag serializes v and returns a quoted strong entity tag of its FNV-1a 64-bit hash.
func ETag(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}

	h := fnv.New64a()
	h.Write(data) // nolint:errcheck

	return fmt.Sprintf(`"%x"`, h.Sum64()), nil
}

// Matches reports whether an If-None-Match header value covers etag.
// Weak validators compare equal to their strong form.
func Matches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
