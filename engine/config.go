package engine

import (
	"net/http"
	"time"

	"github.com/kbukum/webclient/validation"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultConnectTimeout = 10 * time.Second
)

// Config configures an engine implementation. All of it is
// pass-through: the wrapper core above never reads these fields.
type Config struct {
	// Name identifies the engine in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout bounds one full round trip (dial, write, read). Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ConnectTimeout bounds connection establishment. Defaults to 10s.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// ReadTimeout bounds the wait for response headers. Zero disables it.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout bounds writing the request body. Zero disables it.
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// Proxy is the proxy URL (http, https or socks5 scheme). Empty disables proxying.
	Proxy string `yaml:"proxy" mapstructure:"proxy" validate:"omitempty,uri"`

	// UserAgent is sent with every request unless overridden per request.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures TLS settings for the transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CookieJar stores and replays cookies across requests. Nil disables cookies.
	CookieJar http.CookieJar `yaml:"-" mapstructure:"-"`

	// WrapTransport wraps the underlying RoundTripper (caching,
	// interception). Applied after all other transport configuration.
	WrapTransport func(http.RoundTripper) http.RoundTripper `yaml:"-" mapstructure:"-"`

	// Retry configures engine-level retry on retryable transport
	// errors. Nil disables retry; the wrapper core above never retries.
	Retry *RetryConfig `yaml:"retry" mapstructure:"retry"`

	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`

	// FollowRedirects controls redirect following. Defaults to true.
	FollowRedirects *bool `yaml:"follow_redirects" mapstructure:"follow_redirects"`
}

// RetryConfig configures engine-level retry.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1"`
	// MinWait is the initial delay between attempts.
	MinWait time.Duration `yaml:"min_wait" mapstructure:"min_wait"`
	// MaxWait caps the delay between attempts.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.Retry != nil {
		if c.Retry.MaxAttempts <= 0 {
			c.Retry.MaxAttempts = 3
		}
		if c.Retry.MinWait <= 0 {
			c.Retry.MinWait = 100 * time.Millisecond
		}
		if c.Retry.MaxWait <= 0 {
			c.Retry.MaxWait = 10 * time.Second
		}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// followRedirects resolves the redirect policy with its default.
func (c *Config) followRedirects() bool {
	if c.FollowRedirects == nil {
		return true
	}
	return *c.FollowRedirects
}
