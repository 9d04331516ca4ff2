// Package request models one outbound request declaratively: a closed
// verb set with per-verb body policy, a descriptor that resolves a
// relative-or-absolute URL and builds an engine request, and method
// definitions that bind an endpoint to a variant and an optional
// countable (paginated) parameter.
//
// Descriptors are single-use: built fresh per processing-loop
// iteration, consumed by Build, discarded. Build-time violations (no
// URL slot, missing body on POST/PUT, unknown method variant) are
// contract errors surfaced immediately.
package request
