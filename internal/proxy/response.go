package proxy

import (
	"encoding/json"
	"net/http"
)

const msgServerError = "Server error"

// Response is the uniform outward answer of the proxy.
// A nil Body means no body is written.
type Response struct {
	StatusCode int
	Body       []byte
}

// errorBody is the failure shape; Details carries the parsed upstream payload.
type errorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

// errorResponse builds a failure Response. An empty message becomes "Server error".
func errorResponse(status int, msg string, details json.RawMessage) Response {
	if msg == "" {
		msg = msgServerError
	}
	b, err := json.Marshal(errorBody{Error: msg, Details: details})
	if err != nil {
		b, _ = json.Marshal(errorBody{Error: msg})
	}
	return Response{StatusCode: status, Body: b}
}

// upstreamPayload returns raw when it is JSON, otherwise {"raw": "<text>"}.
func upstreamPayload(raw []byte) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	b, _ := json.Marshal(map[string]string{"raw": string(raw)})
	return b
}

// write sends resp; JSON bodies get a Content-Type header.
func (resp Response) write(w http.ResponseWriter) {
	if resp.Body == nil {
		w.WriteHeader(resp.StatusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body) // nolint:errcheck
}
