package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options controls where configuration is read from.
type Options struct {
	// ConfigFile is an explicit YAML file path. When empty, standard
	// locations are searched.
	ConfigFile string
	// EnvFile is an explicit .env file path. When empty, ./.env is
	// used if present.
	EnvFile string
	// EnvPrefix namespaces environment overrides. Defaults to WEBCLIENT:
	// WEBCLIENT_ENGINE_TIMEOUT overrides engine.timeout.
	EnvPrefix string
}

// Option is a functional option for Load.
type Option func(*Options)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = prefix }
}

// Load reads YAML configuration, layers a .env file and prefixed
// environment variables over it, and unmarshals the result into cfg.
func Load(cfg any, opts ...Option) error {
	o := Options{EnvPrefix: "WEBCLIENT"}
	for _, opt := range opts {
		opt(&o)
	}

	if o.EnvFile == "" && exists(".env") {
		o.EnvFile = ".env"
	}
	if o.EnvFile != "" && exists(o.EnvFile) {
		if err := godotenv.Load(o.EnvFile); err != nil {
			return fmt.Errorf("config: load env file %s: %w", o.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(o.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.ConfigFile == "" {
		o.ConfigFile = findConfigFile()
	}
	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", o.ConfigFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

// findConfigFile searches standard locations for a config file.
func findConfigFile() string {
	searchPaths := []string{
		"./config.yml",
		"./config.yaml",
		"./config/config.yml",
		"./config/config.yaml",
	}
	for _, path := range searchPaths {
		if exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
