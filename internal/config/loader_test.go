package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Conversation.HopLimit != 10 {
		t.Errorf("HopLimit = %d, want 10", cfg.Conversation.HopLimit)
	}
	if cfg.Conversation.TurnTimeout != 60*time.Second {
		t.Errorf("TurnTimeout = %v, want 60s", cfg.Conversation.TurnTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != Defaults().Server.Port {
		t.Errorf("Port = %q, want default", cfg.Server.Port)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentcare.yaml")
	data := []byte(`
server:
  port: "9090"
conversation:
  hop_limit: 4
  turn_timeout: 30s
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Conversation.HopLimit != 4 {
		t.Errorf("HopLimit = %d, want 4", cfg.Conversation.HopLimit)
	}
	if cfg.Conversation.TurnTimeout != 30*time.Second {
		t.Errorf("TurnTimeout = %v, want 30s", cfg.Conversation.TurnTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep defaults.
	if cfg.Cache.MaxEntries != Defaults().Cache.MaxEntries {
		t.Errorf("MaxEntries = %d, want default", cfg.Cache.MaxEntries)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() expected error for invalid YAML")
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentcare.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AGENTCARE_PORT", "7070")
	t.Setenv("AGENTCARE_HOP_LIMIT", "3")
	t.Setenv("AGENTCARE_TURN_TIMEOUT", "15s")
	t.Setenv("AGENTCARE_LOG_ASYNC", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Conversation.HopLimit != 3 {
		t.Errorf("HopLimit = %d, want 3", cfg.Conversation.HopLimit)
	}
	if cfg.Conversation.TurnTimeout != 15*time.Second {
		t.Errorf("TurnTimeout = %v, want 15s", cfg.Conversation.TurnTimeout)
	}
	if !cfg.Logging.Async {
		t.Error("Async = false, want true")
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"negative hop limit", func(c *Config) { c.Conversation.HopLimit = -1 }},
		{"negative timeout", func(c *Config) { c.Conversation.TurnTimeout = -time.Second }},
		{"empty artifacts dir", func(c *Config) { c.Artifacts.Dir = "" }},
		{"zero cache entries", func(c *Config) { c.Cache.MaxEntries = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.validate(); err == nil {
				t.Error("validate() expected error")
			}
		})
	}
}
