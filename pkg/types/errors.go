package types

import (
	"errors"
	"fmt"
)

// APIError is returned by a Session when the API answers with a non-2xx
// status. The body fields follow the API error object; Method and URL are
// filled in by the Session.
type APIError struct {
	Method     string `json:"-"`
	URL        string `json:"-"`
	Type       string `json:"type,omitempty"`
	StatusCode int    `json:"status"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: http %d", e.Method, e.URL, e.StatusCode)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// Decoding errors.
var (
	ErrUnknownOp   = errors.New("unknown template operation")
	ErrMalformedOp = errors.New("malformed template operation")
	ErrMissingID   = errors.New("response has no id")
)
