package engine

import (
	"context"
	"io"
	"net/http"
)

// Engine is the narrow interface the wrapper core needs from an HTTP
// implementation: take a fully built request, execute one round trip,
// return the response. Everything else (pooling, TLS, redirects,
// caching) is the engine's concern.
type Engine interface {
	Execute(ctx context.Context, req Request) (*Response, error)
	ExecuteStream(ctx context.Context, req Request) (*StreamResponse, error)
}

// Request is a fully resolved request ready for execution. The URL is
// final (query already encoded); no further resolution happens below
// this point.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string
	// URL is the absolute request URL including encoded query.
	URL string
	// Header holds the request headers.
	Header http.Header
	// Body is the request body. Nil means no body.
	Body []byte
}

// Response is the result of one round trip. Non-2xx status codes are
// not errors at this level; status interpretation belongs to response
// mappers and limit predicates above the engine.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the HTTP status line text.
	Status string
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// StreamResponse wraps a streaming response body. The caller must
// close it when done.
type StreamResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw streaming body.
	Body io.ReadCloser
}

// Close releases the underlying body.
func (r *StreamResponse) Close() error {
	if r.Body != nil {
		return r.Body.Close()
	}
	return nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
