package client

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/request"
)

// ErrSessionInterrupted marks a session-level failure: an expired
// credential or a session-guard predicate rejecting a response. It is
// a distinct condition, never retried automatically.
var ErrSessionInterrupted = errors.New("client: session interrupted")

// RequestID returns a request processor stamping a fresh UUID into the
// given header on every outgoing request. An empty header name
// defaults to X-Request-ID.
func RequestID(header string) RequestProcessor {
	if header == "" {
		header = "X-Request-ID"
	}
	return func(d *request.Descriptor) error {
		d.SetHeader(header, uuid.NewString())
		return nil
	}
}

// SessionGuard returns a response processor evaluating pred over the
// response body. A false result surfaces ErrSessionInterrupted to the
// immediate caller and, in paginated runs, aborts the loop.
func SessionGuard(pred func(body []byte) bool) ResponseProcessor {
	return func(resp *engine.Response) error {
		if !pred(resp.Body) {
			return fmt.Errorf("session guard rejected response: %w", ErrSessionInterrupted)
		}
		return nil
	}
}

// BodyFieldExists builds a guard predicate: the JSON field at path is present.
func BodyFieldExists(path string) func([]byte) bool {
	return func(body []byte) bool {
		return gjson.GetBytes(body, path).Exists()
	}
}

// BodyFieldEquals builds a guard predicate: the JSON field at path
// equals want when rendered as a string.
func BodyFieldEquals(path, want string) func([]byte) bool {
	return func(body []byte) bool {
		return gjson.GetBytes(body, path).String() == want
	}
}

// BodyFieldTrue builds a guard predicate: the JSON field at path is true.
func BodyFieldTrue(path string) func([]byte) bool {
	return func(body []byte) bool {
		return gjson.GetBytes(body, path).Bool()
	}
}
