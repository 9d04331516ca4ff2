package request

import "net/http"

// Verb is the closed set of supported HTTP verbs. JSON method variants
// are not verbs: they map down to POST/PUT with a pre-serialized body
// (see Kind).
type Verb int

const (
	// GET requests a resource and carries no body.
	GET Verb = iota
	// POST submits a resource and requires a body.
	POST
	// PUT replaces a resource and requires a body.
	PUT
	// DELETE removes a resource and carries no body.
	DELETE
)

// String returns the HTTP method name for the verb.
func (v Verb) String() string {
	switch v {
	case GET:
		return http.MethodGet
	case POST:
		return http.MethodPost
	case PUT:
		return http.MethodPut
	case DELETE:
		return http.MethodDelete
	default:
		return "UNKNOWN"
	}
}

// RequiresBody reports the body policy for the verb. POST and PUT must
// carry a body at build time; GET and DELETE never require one.
func (v Verb) RequiresBody() bool {
	switch v {
	case POST, PUT:
		return true
	default:
		return false
	}
}
