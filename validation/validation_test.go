package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleConfig struct {
	BaseURL   string  `json:"base_url" validate:"omitempty,url"`
	Name      string  `json:"name" validate:"required"`
	RateLimit float64 `json:"rate_limit" validate:"gte=0"`
	Mode      string  `json:"mode" validate:"omitempty,oneof=fast slow"`
}

func TestValidate_OK(t *testing.T) {
	cfg := sampleConfig{BaseURL: "https://api.example.com", Name: "client", Mode: "fast"}
	if err := Validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	cfg := sampleConfig{BaseURL: "not a url", RateLimit: -1, Mode: "warp"}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(verr.Fields), verr.Fields)
	}

	byField := map[string]string{}
	for _, f := range verr.Fields {
		byField[f.Field] = f.Message
	}
	if byField["base_url"] != "must be a valid URL" {
		t.Errorf("unexpected base_url message %q", byField["base_url"])
	}
	if byField["name"] != "is required" {
		t.Errorf("unexpected name message %q", byField["name"])
	}
	if byField["rate_limit"] != "must be at least 0" {
		t.Errorf("unexpected rate_limit message %q", byField["rate_limit"])
	}
	if !strings.Contains(byField["mode"], "fast slow") {
		t.Errorf("unexpected mode message %q", byField["mode"])
	}

	if !strings.HasPrefix(err.Error(), "validation: ") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"BaseURL", "base_u_r_l"},
		{"Name", "name"},
		{"RateLimit", "rate_limit"},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.want {
			t.Errorf("toSnakeCase(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
