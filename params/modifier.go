package params

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/kbukum/webclient/request"
)

// Modifier merges one named param into a descriptor. Modifiers are
// pure with respect to the param; the descriptor they return is the
// one the next modifier sees.
type Modifier func(p Param, d *request.Descriptor) (*request.Descriptor, error)

// Modifiers maps param names to modification functions. Unregistered
// names fall back to the default modifier for the param's kind.
type Modifiers struct {
	byName map[string]Modifier
}

// NewModifiers creates an empty modifier registry.
func NewModifiers() *Modifiers {
	return &Modifiers{byName: make(map[string]Modifier)}
}

// Register binds a modifier to a param name, overriding the kind default.
func (m *Modifiers) Register(name string, fn Modifier) {
	m.byName[name] = fn
}

// Apply folds every param of the set into the descriptor: an explicit
// reduce, each step returning the descriptor for the next.
func (m *Modifiers) Apply(set *Set, d *request.Descriptor) (*request.Descriptor, error) {
	for _, p := range set.Params() {
		fn := m.lookup(p)
		next, err := fn(p, d)
		if err != nil {
			return nil, err
		}
		d = next
	}
	return d, nil
}

// lookup resolves the modifier for a param: registered override first,
// kind default otherwise.
func (m *Modifiers) lookup(p Param) Modifier {
	if m != nil {
		if fn, ok := m.byName[p.Name()]; ok {
			return fn
		}
	}
	return defaultModifier
}

// defaultModifier merges a param by kind: plain and countable pairs
// into the query, header pairs into the headers, body fields into the
// JSON body.
func defaultModifier(p Param, d *request.Descriptor) (*request.Descriptor, error) {
	switch v := p.(type) {
	case *Plain:
		for _, pr := range v.Pairs() {
			d.AddQuery(pr.Key, pr.Value)
		}
	case *Header:
		for _, pr := range v.Pairs() {
			d.SetHeader(pr.Key, pr.Value)
		}
	case *Body:
		body := d.Body()
		if body == nil {
			body = []byte(`{}`)
		}
		for _, f := range v.Fields() {
			next, err := sjson.SetBytes(body, f.Path, f.Value)
			if err != nil {
				return nil, fmt.Errorf("params: set body field %q: %w", f.Path, err)
			}
			body = next
		}
		d.SetBody(body)
	case *Countable:
		for _, pr := range v.Pairs() {
			d.AddQuery(pr.Key, pr.Value)
		}
	default:
		return nil, fmt.Errorf("params: no default modifier for %T", p)
	}
	return d, nil
}
