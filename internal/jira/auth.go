package jira

import "net/http"

// AuthFunc applies authentication to an outgoing request.
type AuthFunc func(r *http.Request)

// NewBasicAuth returns an AuthFunc that sends "Basic base64(email:token)".
// Values are used as given; the token is never retained outside the closure.
func NewBasicAuth(email, token string) AuthFunc {
	return func(r *http.Request) {
		r.SetBasicAuth(email, token)
	}
}
