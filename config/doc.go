// Package config loads declarative client configuration.
//
// It uses Viper to read a YAML file, godotenv to layer a .env file,
// and prefixed environment variables for overrides
// (e.g. WEBCLIENT_ENGINE_TIMEOUT overrides engine.timeout).
//
// # Usage
//
//	cfg, err := config.LoadClient(config.WithConfigFile("config.yml"))
package config
