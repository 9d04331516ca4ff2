package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `base_url: https://api.example.com
engine:
  name: primary
  timeout: 5s
  user_agent: webclient/1.0
  rate_limit: 10
logging:
  level: debug
  format: json
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadClient_FromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)

	cfg, err := LoadClient(WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Engine.Name != "primary" {
		t.Errorf("unexpected engine name %q", cfg.Engine.Name)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("expected duration parsed from string, got %s", cfg.Engine.Timeout)
	}
	if cfg.Engine.ConnectTimeout != 10*time.Second {
		t.Errorf("expected defaulted connect timeout, got %s", cfg.Engine.ConnectTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadClient_EnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	t.Setenv("WEBCLIENT_BASE_URL", "https://override.example.com")

	cfg, err := LoadClient(WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://override.example.com" {
		t.Errorf("expected env override, got %q", cfg.BaseURL)
	}
}

func TestLoadClient_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)
	envFile := writeFile(t, dir, "test.env", "WEBCLIENT_BASE_URL=https://from-dotenv.example.com\n")
	t.Cleanup(func() { os.Unsetenv("WEBCLIENT_BASE_URL") })

	cfg, err := LoadClient(WithConfigFile(path), WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://from-dotenv.example.com" {
		t.Errorf("expected .env value, got %q", cfg.BaseURL)
	}
}

func TestLoadClient_InvalidValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "base_url: not a url\n")
	if _, err := LoadClient(WithConfigFile(path)); err == nil {
		t.Error("expected validation failure")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	var cfg ClientConfig
	if err := Load(&cfg, WithConfigFile(filepath.Join(t.TempDir(), "absent.yml"))); err == nil {
		t.Error("expected error for a missing explicit file")
	}
}

func TestLoadClient_CustomPrefix(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	t.Setenv("MYAPP_BASE_URL", "https://prefixed.example.com")

	cfg, err := LoadClient(WithConfigFile(path), WithEnvPrefix("MYAPP"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://prefixed.example.com" {
		t.Errorf("expected prefixed env override, got %q", cfg.BaseURL)
	}
}
