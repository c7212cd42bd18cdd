package types

import "context"

// Session issues API requests. Implementations own the transport,
// authentication headers, and JSON encoding of bodies and responses.
//
// Each method decodes a successful response into out when out is non-nil.
// A non-2xx response is reported as an *APIError; other failures come from
// the transport. Callers return these errors unchanged.
type Session interface {
	// APIURL returns the base URL that resource URLs are built on, without a
	// trailing slash.
	APIURL() string

	// Get sends a GET request. query, when non-nil, is a struct encoded as
	// URL query parameters.
	Get(ctx context.Context, url string, query any, out any) error

	// Post sends body as JSON in a POST request.
	Post(ctx context.Context, url string, body any, out any) error

	// Put sends body as JSON in a PUT request.
	Put(ctx context.Context, url string, body any, out any) error

	// Delete sends a DELETE request.
	Delete(ctx context.Context, url string) error
}
