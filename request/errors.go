package request

import "errors"

// Errors surfaced at descriptor build time. All are contract errors:
// non-recoverable, raised immediately, never defaulted around.
var (
	// ErrURLNotSet indicates a descriptor with neither a relative nor
	// an absolute URL slot configured.
	ErrURLNotSet = errors.New("request: no url configured")

	// ErrMissingBody indicates a POST or PUT built without a body.
	ErrMissingBody = errors.New("request: verb requires a body")

	// ErrUnknownMethod indicates an unregistered method variant. A
	// registry/config bug, not a runtime condition callers should expect.
	ErrUnknownMethod = errors.New("request: unknown method variant")
)
