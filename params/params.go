package params

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kbukum/webclient/request"
)

// ErrKeyNotFound is returned by Replace when the key is absent.
// Replace is the only mutation the processing loop performs, so a
// missing key is surfaced explicitly instead of failing silently.
var ErrKeyNotFound = errors.New("params: key not found")

// Param is one named parameter bag. Concrete kinds are Plain, Header,
// Body and Countable; the default modifier for each kind decides how
// it merges into a request descriptor.
type Param interface {
	// Name identifies the bag; modifiers are keyed by it.
	Name() string
}

// Plain is an ordered key-value bag merged into the query string.
type Plain struct {
	name  string
	pairs []request.Pair
}

// NewPlain creates a plain bag with the given ordered pairs.
func NewPlain(name string, pairs ...request.Pair) *Plain {
	return &Plain{name: name, pairs: pairs}
}

// Name returns the bag name.
func (p *Plain) Name() string { return p.name }

// Add appends a pair, preserving order.
func (p *Plain) Add(key, value string) {
	p.pairs = append(p.pairs, request.Pair{Key: key, Value: value})
}

// Get returns the first value for key.
func (p *Plain) Get(key string) (string, bool) {
	for _, pr := range p.pairs {
		if pr.Key == key {
			return pr.Value, true
		}
	}
	return "", false
}

// Replace swaps the value of the first pair matching key in place.
// Returns ErrKeyNotFound when no pair matches.
func (p *Plain) Replace(key, value string) error {
	for i := range p.pairs {
		if p.pairs[i].Key == key {
			p.pairs[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}

// Pairs returns the ordered pairs.
func (p *Plain) Pairs() []request.Pair {
	return p.pairs
}

// Header is a named bag of request headers.
type Header struct {
	name  string
	pairs []request.Pair
}

// NewHeader creates a header bag.
func NewHeader(name string, pairs ...request.Pair) *Header {
	return &Header{name: name, pairs: pairs}
}

// Name returns the bag name.
func (h *Header) Name() string { return h.name }

// Set adds or replaces a header value.
func (h *Header) Set(key, value string) {
	for i := range h.pairs {
		if h.pairs[i].Key == key {
			h.pairs[i].Value = value
			return
		}
	}
	h.pairs = append(h.pairs, request.Pair{Key: key, Value: value})
}

// Pairs returns the header pairs.
func (h *Header) Pairs() []request.Pair {
	return h.pairs
}

// Field is one JSON body field addressed by a gjson-style path.
type Field struct {
	Path  string
	Value any
}

// Body is a named bag of JSON body fields, merged into the descriptor
// body one field at a time.
type Body struct {
	name   string
	fields []Field
}

// NewBody creates a body-field bag.
func NewBody(name string, fields ...Field) *Body {
	return &Body{name: name, fields: fields}
}

// Name returns the bag name.
func (b *Body) Name() string { return b.name }

// Set appends a field.
func (b *Body) Set(path string, value any) {
	b.fields = append(b.fields, Field{Path: path, Value: value})
}

// Fields returns the body fields.
func (b *Body) Fields() []Field {
	return b.fields
}

// Countable is a monotonically advancing cursor parameter (page
// number, offset) driving the processing loop. The count is owned by
// the loop: it advances by step once per accepted iteration and is
// written through Replace on the underlying pair, formatted as the
// pair's string value.
type Countable struct {
	name  string
	key   string
	count int64
	step  int64
	limit request.Limit
	pairs *Plain
}

// NewCountable creates a countable parameter for the given query key.
func NewCountable(name, key string, initial, step int64, limit request.Limit) *Countable {
	c := &Countable{
		name:  name,
		key:   key,
		count: initial,
		step:  step,
		limit: limit,
	}
	c.pairs = NewPlain(name, request.Pair{Key: key, Value: strconv.FormatInt(initial, 10)})
	return c
}

// FromSpec creates a countable parameter from a method's declarative spec.
func FromSpec(spec request.CountableSpec) *Countable {
	return NewCountable(spec.ParamName, spec.ParamName, spec.Initial, spec.Step, spec.Limit)
}

// Name returns the bag name.
func (c *Countable) Name() string { return c.name }

// Key returns the underlying query key.
func (c *Countable) Key() string { return c.key }

// Count returns the current cursor value.
func (c *Countable) Count() int64 { return c.count }

// Step returns the per-iteration advance.
func (c *Countable) Step() int64 { return c.step }

// Limit returns the stop predicate.
func (c *Countable) Limit() request.Limit { return c.limit }

// Pairs returns the underlying pair carrying the formatted count.
func (c *Countable) Pairs() []request.Pair {
	return c.pairs.Pairs()
}

// Advance moves the cursor by step and writes it through Replace on
// the underlying pair. A missing underlying key surfaces as
// ErrKeyNotFound.
func (c *Countable) Advance() error {
	c.count += c.step
	return c.pairs.Replace(c.key, strconv.FormatInt(c.count, 10))
}

// Set is an ordered collection of named params. Params stay
// caller-owned; the processing loop mutates only the countable slot.
type Set struct {
	params []Param
}

// NewSet creates a set from the given params, preserving order.
func NewSet(ps ...Param) *Set {
	return &Set{params: ps}
}

// Add appends a param.
func (s *Set) Add(p Param) {
	s.params = append(s.params, p)
}

// Params returns the ordered params.
func (s *Set) Params() []Param {
	if s == nil {
		return nil
	}
	return s.params
}

// Countable returns the first countable param, or nil.
func (s *Set) Countable() *Countable {
	if s == nil {
		return nil
	}
	for _, p := range s.params {
		if c, ok := p.(*Countable); ok {
			return c
		}
	}
	return nil
}
