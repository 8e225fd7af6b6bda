package proxy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// messageExtractor derives a human-readable message from a failed upstream
// response. It reports false when its shape does not apply.
type messageExtractor func(status int, body map[string]any) (string, bool)

// upstreamErrorExtractors are tried in order; the first match wins.
// The last one always matches.
var upstreamErrorExtractors = []messageExtractor{
	errorField,
	joinedErrorMessages,
	statusFallback,
}

// upstreamErrorMessage picks the message for a non-2xx upstream payload.
func upstreamErrorMessage(status int, payload []byte) string {
	var body map[string]any
	_ = json.Unmarshal(payload, &body) // non-object payloads leave body nil

	for _, extract := range upstreamErrorExtractors {
		if msg, ok := extract(status, body); ok {
			return msg
		}
	}
	return statusMessage(status)
}

// errorField uses a non-empty string "error" field.
func errorField(_ int, body map[string]any) (string, bool) {
	s, ok := body["error"].(string)
	return s, ok && s != ""
}

// joinedErrorMessages joins Jira's "errorMessages" array with ", ".
func joinedErrorMessages(_ int, body map[string]any) (string, bool) {
	list, ok := body["errorMessages"].([]any)
	if !ok || len(list) == 0 {
		return "", false
	}

	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = stringify(item)
	}
	joined := strings.Join(parts, ", ")
	return joined, joined != ""
}

// statusFallback embeds the upstream status code.
func statusFallback(status int, _ map[string]any) (string, bool) {
	return statusMessage(status), true
}

func statusMessage(status int) string {
	return fmt.Sprintf("Jira error HTTP %d", status)
}

// stringify renders a decoded JSON value for message joining; null becomes "".
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		b, _ := json.Marshal(s)
		return string(b)
	}
}
