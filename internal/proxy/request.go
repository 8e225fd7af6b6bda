package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Bounds for the upstream page size.
const (
	DefaultMaxResults = 20
	MaxResultsLimit   = 100
	minMaxResults     = 1
)

// Client-facing validation messages.
const (
	msgInvalidJSON   = "Invalid JSON body"
	msgMissingFields = "Missing required fields: domain, email, token"
	msgJQLRequired   = "JQL is required"
)

var (
	errInvalidJSON   = errors.New(msgInvalidJSON)
	errMissingFields = errors.New(msgMissingFields)
	errJQLRequired   = errors.New(msgJQLRequired)
)

// searchInput is a validated inbound search request. Token is only read once,
// to build the upstream auth header.
type searchInput struct {
	Domain     string
	Email      string
	Token      string
	JQL        string
	MaxResults int
}

// parseSearchInput decodes and validates an inbound body; the first failing check wins.
func parseSearchInput(body []byte) (searchInput, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return searchInput{}, errInvalidJSON
	}

	domain, okDomain := nonEmptyString(fields, "domain")
	email, okEmail := nonEmptyString(fields, "email")
	token, okToken := nonEmptyString(fields, "token")
	if !okDomain || !okEmail || !okToken {
		return searchInput{}, errMissingFields
	}

	jql, ok := nonEmptyString(fields, "jql")
	if !ok {
		return searchInput{}, errJQLRequired
	}

	maxResults := DefaultMaxResults
	if v, present := fields["maxResults"]; present {
		maxResults = clampInt(v, minMaxResults, MaxResultsLimit)
	}

	return searchInput{
		Domain:     domain,
		Email:      email,
		Token:      token,
		JQL:        jql,
		MaxResults: maxResults,
	}, nil
}

// decodeObject decodes body as a single JSON object. An empty body or a JSON
// null yields an empty object; any other non-object value is an error.
func decodeObject(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// nonEmptyString returns fields[key] when it is a non-empty string.
func nonEmptyString(fields map[string]any, key string) (string, bool) {
	s, ok := fields[key].(string)
	return s, ok && s != ""
}

// clampInt coerces v to an integer within [lo, hi].
// Values that do not parse as a number fall to lo, not to the default.
func clampInt(v any, lo, hi int) int {
	f, ok := asNumber(v)
	if !ok || math.IsNaN(f) {
		return lo
	}
	f = math.Trunc(f)
	return int(math.Max(float64(lo), math.Min(float64(hi), f)))
}

// asNumber converts a decoded JSON scalar into a float.
// Strings are read like a leading-integer parse: "42abc" is 42, "abc" is not a number.
func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		return parseLeadingInt(x)
	default:
		return 0, false
	}
}

// parseLeadingInt parses an optional sign followed by decimal digits after
// leading whitespace, ignoring anything that follows the digits.
func parseLeadingInt(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	// Digit runs too long for a float become ±Inf, which still clamps correctly.
	f, err := strconv.ParseFloat(sign+s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
