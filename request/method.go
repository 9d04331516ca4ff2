package request

import (
	"fmt"

	"github.com/kbukum/webclient/engine"
)

// Kind enumerates the registered method-definition variants. The set
// is closed: ResolveVerb matches it exhaustively, so adding a variant
// is a forced, visible change at exactly one point.
type Kind int

const (
	// KindGet is a plain GET.
	KindGet Kind = iota
	// KindPost is a plain POST.
	KindPost
	// KindPut is a plain PUT.
	KindPut
	// KindDelete is a plain DELETE.
	KindDelete
	// KindJSONPost is a POST with a pre-serialized JSON body and a
	// fixed application/json content type.
	KindJSONPost
	// KindJSONPut is the PUT counterpart of KindJSONPost.
	KindJSONPut
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindGet:
		return "get"
	case KindPost:
		return "post"
	case KindPut:
		return "put"
	case KindDelete:
		return "delete"
	case KindJSONPost:
		return "json_post"
	case KindJSONPut:
		return "json_put"
	default:
		return "unknown"
	}
}

// IsJSON reports whether the variant fixes an application/json content type.
func (k Kind) IsJSON() bool {
	return k == KindJSONPost || k == KindJSONPut
}

// Limit decides whether a countable loop has reached its termination
// condition. It returns true to STOP: the response that triggers the
// stop is discarded, never mapped or collected.
type Limit func(count int64, resp *engine.Response) bool

// CountableSpec declares the paginated parameter of a method: the
// query parameter to advance, its starting value, the step per
// accepted iteration, and the stop predicate.
type CountableSpec struct {
	// ParamName is the query parameter carrying the cursor.
	ParamName string
	// Initial is the first cursor value.
	Initial int64
	// Step advances the cursor after each accepted iteration.
	Step int64
	// Limit is the stop predicate.
	Limit Limit
}

// Method declares one logical endpoint: where it lives, which variant
// it uses and, optionally, how it paginates. Exactly one of
// RelativeURL/AbsoluteURL may be set.
type Method struct {
	// Name identifies the method in logs.
	Name string
	// Kind selects the variant.
	Kind Kind
	// RelativeURL is resolved against the client base URL.
	RelativeURL string
	// AbsoluteURL overrides the base URL entirely.
	AbsoluteURL string
	// Countable, when set, engages the paginated processing loop.
	Countable *CountableSpec
}

// ResolveVerb maps a method definition to its verb. Total over the
// registered variants; anything else is a defensive ErrUnknownMethod.
func ResolveVerb(m Method) (Verb, error) {
	switch m.Kind {
	case KindGet:
		return GET, nil
	case KindPost, KindJSONPost:
		return POST, nil
	case KindPut, KindJSONPut:
		return PUT, nil
	case KindDelete:
		return DELETE, nil
	default:
		return 0, fmt.Errorf("%w: kind %d", ErrUnknownMethod, m.Kind)
	}
}

// Descriptor builds a fresh descriptor for the method against the
// given base URL, with the variant's content type already applied.
func (m Method) Descriptor(baseURL string) (*Descriptor, error) {
	verb, err := ResolveVerb(m)
	if err != nil {
		return nil, err
	}

	var d *Descriptor
	if m.AbsoluteURL != "" {
		d = NewAbsolute(verb, m.AbsoluteURL)
	} else {
		d = NewRelative(verb, baseURL, m.RelativeURL)
	}

	if m.Kind.IsJSON() {
		d.SetHeader("Content-Type", "application/json")
	}
	return d, nil
}
