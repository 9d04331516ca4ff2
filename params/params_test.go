package params

import (
	"errors"
	"testing"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/request"
)

func TestPlain_Replace(t *testing.T) {
	p := NewPlain("query", request.Pair{Key: "page", Value: "1"}, request.Pair{Key: "size", Value: "50"})

	if err := p.Replace("page", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := p.Get("page"); got != "2" {
		t.Errorf("expected replaced value 2, got %q", got)
	}
	if got, _ := p.Get("size"); got != "50" {
		t.Errorf("other pairs must be untouched, got %q", got)
	}
}

func TestPlain_Replace_MissingKey(t *testing.T) {
	p := NewPlain("query", request.Pair{Key: "page", Value: "1"})
	err := p.Replace("offset", "10")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected explicit ErrKeyNotFound, got %v", err)
	}
}

func TestCountable_Advance(t *testing.T) {
	c := NewCountable("page", "page", 1, 2, LimitAtCount(100))

	if c.Count() != 1 {
		t.Fatalf("expected initial count 1, got %d", c.Count())
	}
	if got, _ := NewPlain("", c.Pairs()...).Get("page"); got != "1" {
		t.Errorf("expected formatted initial value, got %q", got)
	}

	if err := c.Advance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Count() != 3 {
		t.Errorf("expected count advanced by step, got %d", c.Count())
	}
	if got, _ := NewPlain("", c.Pairs()...).Get("page"); got != "3" {
		t.Errorf("expected formatted value written through Replace, got %q", got)
	}
}

func TestFromSpec(t *testing.T) {
	c := FromSpec(request.CountableSpec{ParamName: "offset", Initial: 0, Step: 25, Limit: LimitAtCount(100)})
	if c.Name() != "offset" || c.Key() != "offset" {
		t.Errorf("expected param name as key, got name=%q key=%q", c.Name(), c.Key())
	}
	if c.Count() != 0 || c.Step() != 25 {
		t.Errorf("expected count 0 step 25, got %d %d", c.Count(), c.Step())
	}
}

func TestSet_Countable(t *testing.T) {
	set := NewSet(NewPlain("q"), NewHeader("h"))
	if set.Countable() != nil {
		t.Error("expected no countable")
	}
	c := NewCountable("page", "page", 0, 1, LimitAtCount(3))
	set.Add(c)
	if set.Countable() != c {
		t.Error("expected the added countable")
	}
}

func TestModifiers_Apply_Defaults(t *testing.T) {
	set := NewSet(
		NewPlain("query", request.Pair{Key: "q", Value: "golang"}),
		NewHeader("headers", request.Pair{Key: "X-Trace", Value: "abc"}),
		NewCountable("page", "page", 4, 1, LimitAtCount(10)),
	)

	d := request.NewRelative(request.GET, "https://api.example.com", "/search")
	d, err := NewModifiers().Apply(set, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, err := d.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://api.example.com/search?q=golang&page=4"
	if req.URL != want {
		t.Errorf("expected %s, got %s", want, req.URL)
	}
	if got := req.Header.Get("X-Trace"); got != "abc" {
		t.Errorf("expected header applied, got %q", got)
	}
}

func TestModifiers_Apply_BodyFields(t *testing.T) {
	set := NewSet(NewBody("body",
		Field{Path: "user.name", Value: "alice"},
		Field{Path: "user.age", Value: 30},
	))

	d := request.NewRelative(request.POST, "https://api.example.com", "/users")
	d, err := NewModifiers().Apply(set, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"user":{"name":"alice","age":30}}`
	if string(d.Body()) != want {
		t.Errorf("expected %s, got %s", want, d.Body())
	}
}

func TestModifiers_Apply_RegisteredOverride(t *testing.T) {
	set := NewSet(NewPlain("query", request.Pair{Key: "q", Value: "x"}))

	m := NewModifiers()
	m.Register("query", func(p Param, d *request.Descriptor) (*request.Descriptor, error) {
		d.SetHeader("X-Override", "yes")
		return d, nil
	})

	d := request.NewRelative(request.GET, "https://api.example.com", "/")
	d, err := m.Apply(set, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.Header().Get("X-Override"); got != "yes" {
		t.Errorf("registered modifier must win over the kind default, got %q", got)
	}
	if len(d.Query()) != 0 {
		t.Errorf("default modifier must not run, got query %v", d.Query())
	}
}

func TestLimits(t *testing.T) {
	resp := func(body string) *engine.Response {
		return &engine.Response{StatusCode: 200, Body: []byte(body)}
	}

	t.Run("at count", func(t *testing.T) {
		limit := LimitAtCount(3)
		if limit(2, resp("x")) {
			t.Error("count below n must continue")
		}
		if !limit(3, resp("x")) {
			t.Error("count at n must stop")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		limit := LimitWhenEmptyBody()
		if limit(0, resp(`[{"id":1}]`)) {
			t.Error("non-empty body must continue")
		}
		if !limit(0, resp("  \n")) {
			t.Error("whitespace body must stop")
		}
	})

	t.Run("array empty", func(t *testing.T) {
		limit := LimitWhenArrayEmpty("items")
		if limit(0, resp(`{"items":[1,2]}`)) {
			t.Error("non-empty array must continue")
		}
		if !limit(0, resp(`{"items":[]}`)) {
			t.Error("empty array must stop")
		}
		if !limit(0, resp(`{"other":1}`)) {
			t.Error("missing array must stop")
		}
	})

	t.Run("array empty at root", func(t *testing.T) {
		limit := LimitWhenArrayEmpty("")
		if limit(0, resp(`[1]`)) {
			t.Error("non-empty root array must continue")
		}
		if !limit(0, resp(`[]`)) {
			t.Error("empty root array must stop")
		}
	})

	t.Run("field missing", func(t *testing.T) {
		limit := LimitWhenFieldMissing("next_cursor")
		if limit(0, resp(`{"next_cursor":"abc"}`)) {
			t.Error("present field must continue")
		}
		if !limit(0, resp(`{}`)) {
			t.Error("missing field must stop")
		}
	})
}
