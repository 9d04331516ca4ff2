package request

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbukum/webclient/engine"
)

// Pair is one ordered key-value entry. Query encoding preserves
// insertion order, so pairs are kept as a slice rather than a map.
type Pair struct {
	Key   string
	Value string
}

// urlMode tracks which URL slot was configured at construction.
type urlMode int

const (
	modeNone urlMode = iota
	modeRelative
	modeAbsolute
)

// Descriptor describes one request: verb, URL resolution, ordered
// query, headers and body. It is constructed fresh per processing-loop
// iteration, mutated only by named-parameter modifiers, consumed by
// Build and discarded — never reused across executions.
type Descriptor struct {
	verb    Verb
	baseURL string
	mode    urlMode
	url     string
	query   []Pair
	header  http.Header
	body    []byte
}

// New creates a descriptor with no URL slot configured. SetURL and
// Build fail with ErrURLNotSet until one is chosen.
func New(verb Verb) *Descriptor {
	return &Descriptor{verb: verb, header: make(http.Header)}
}

// NewRelative creates a descriptor whose URL resolves as baseURL+relativeURL.
func NewRelative(verb Verb, baseURL, relativeURL string) *Descriptor {
	d := New(verb)
	d.baseURL = baseURL
	d.mode = modeRelative
	d.url = relativeURL
	return d
}

// NewAbsolute creates a descriptor whose URL overrides any base URL.
func NewAbsolute(verb Verb, absoluteURL string) *Descriptor {
	d := New(verb)
	d.mode = modeAbsolute
	d.url = absoluteURL
	return d
}

// Verb returns the descriptor's verb.
func (d *Descriptor) Verb() Verb {
	return d.verb
}

// SetURL writes the slot chosen at construction: the relative slot for
// relative descriptors, the absolute slot otherwise. Fails with
// ErrURLNotSet when neither slot is active.
func (d *Descriptor) SetURL(value string) error {
	if d.mode == modeNone {
		return ErrURLNotSet
	}
	d.url = value
	return nil
}

// URL returns the configured slot value: the relative URL if present,
// else the absolute URL, else ErrURLNotSet.
func (d *Descriptor) URL() (string, error) {
	if d.mode == modeNone {
		return "", ErrURLNotSet
	}
	return d.url, nil
}

// AddQuery appends a query pair, preserving insertion order.
func (d *Descriptor) AddQuery(key, value string) {
	d.query = append(d.query, Pair{Key: key, Value: value})
}

// Query returns the ordered query pairs.
func (d *Descriptor) Query() []Pair {
	return d.query
}

// SetHeader sets a request header, replacing any existing value.
func (d *Descriptor) SetHeader(key, value string) {
	d.header.Set(key, value)
}

// Header returns the descriptor's headers for inspection by hooks.
func (d *Descriptor) Header() http.Header {
	return d.header
}

// SetBody sets the request body.
func (d *Descriptor) SetBody(body []byte) {
	d.body = body
}

// Body returns the request body, nil if none is set.
func (d *Descriptor) Body() []byte {
	return d.body
}

// Build resolves the final URL, enforces the verb's body policy and
// returns an immutable engine request. It never executes anything.
func (d *Descriptor) Build() (engine.Request, error) {
	resolved, err := d.resolveURL()
	if err != nil {
		return engine.Request{}, err
	}

	if d.verb.RequiresBody() && d.body == nil {
		return engine.Request{}, fmt.Errorf("%w: %s", ErrMissingBody, d.verb)
	}

	return engine.Request{
		Method: d.verb.String(),
		URL:    resolved,
		Header: d.header.Clone(),
		Body:   d.body,
	}, nil
}

// resolveURL produces the final URL string with the ordered query encoded.
func (d *Descriptor) resolveURL() (string, error) {
	var base string
	switch d.mode {
	case modeAbsolute:
		base = d.url
	case modeRelative:
		base = strings.TrimRight(d.baseURL, "/") + "/" + strings.TrimLeft(d.url, "/")
	default:
		return "", ErrURLNotSet
	}

	if len(d.query) == 0 {
		return base, nil
	}

	var sb strings.Builder
	sb.WriteString(base)
	if strings.Contains(base, "?") {
		sb.WriteByte('&')
	} else {
		sb.WriteByte('?')
	}
	for i, p := range d.query {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String(), nil
}
