package config

import (
	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/validation"
)

// ClientConfig is the declarative file configuration for one client:
// base URL, engine pass-through settings and logging.
type ClientConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	Engine  engine.Config `yaml:"engine" mapstructure:"engine"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies defaults to all sections.
func (c *ClientConfig) ApplyDefaults() {
	c.Engine.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate validates all sections.
func (c *ClientConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// LoadClient loads and validates a ClientConfig.
func LoadClient(opts ...Option) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := Load(&cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
