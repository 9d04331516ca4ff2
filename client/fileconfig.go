package client

import (
	"github.com/kbukum/webclient/config"
	"github.com/kbukum/webclient/logger"
)

// NewFromConfig assembles a client from declarative file configuration:
// the logger from the logging section, the default engine from the
// engine section, the base URL from the top level.
func NewFromConfig(cfg *config.ClientConfig) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewBuilder().
		BaseURL(cfg.BaseURL).
		EngineConfig(cfg.Engine).
		Logger(logger.New(cfg.Logging)).
		Build()
}
