// Package validation validates configuration structs through struct
// tags, with json-tag field names in error messages.
//
//	type Config struct {
//	    BaseURL   string  `json:"base_url" validate:"omitempty,url"`
//	    RateLimit float64 `json:"rate_limit" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
package validation
