package httpclient

import "context"

// Requester is implemented by clients that can execute a RequestOptions
// against a server.
type Requester interface {
	// DoRequest executes the request and returns the raw response body. A 204
	// response yields a nil body. Non-2xx responses yield an *APIError.
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error)

	// Do executes the request and decodes the response body into out when out
	// is non-nil and the response has a body.
	Do(ctx context.Context, opts RequestOptions, out any) error
}

var _ Requester = &HTTPClient{}
