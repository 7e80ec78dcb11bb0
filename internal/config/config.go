// Package config provides hierarchical configuration loading.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the service.
type Config struct {
	Server       Server       `yaml:"server"`
	OpenAI       OpenAI       `yaml:"openai"`
	Conversation Conversation `yaml:"conversation"`
	Artifacts    Artifacts    `yaml:"artifacts"`
	Cache        Cache        `yaml:"cache"`
	Logging      Logging      `yaml:"logging"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// OpenAI holds the chat completion backend configuration. BaseURL may
// point at any OpenAI-compatible endpoint.
type OpenAI struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Conversation holds turn engine configuration.
type Conversation struct {
	// HopLimit caps agent-to-agent transfers within one turn.
	HopLimit int `yaml:"hop_limit"`
	// TurnTimeout bounds one turn's wall clock; 0 disables.
	TurnTimeout time.Duration `yaml:"turn_timeout"`
}

// Artifacts holds generated file storage configuration.
type Artifacts struct {
	Dir             string        `yaml:"dir"`
	MaxAge          time.Duration `yaml:"max_age"`
	CleanupSchedule string        `yaml:"cleanup_schedule"`
}

// Cache holds widget payload cache configuration.
type Cache struct {
	MaxEntries int64         `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Telemetry holds OpenTelemetry export configuration. An empty endpoint
// disables export.
type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Defaults returns a Config with sensible default values for local
// development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8000",
			CORSOrigin: "http://localhost:3000",
		},
		OpenAI: OpenAI{
			Model: "gpt-4o",
		},
		Conversation: Conversation{
			HopLimit:    10,
			TurnTimeout: 60 * time.Second,
		},
		Artifacts: Artifacts{
			Dir:             "artifacts",
			MaxAge:          24 * time.Hour,
			CleanupSchedule: "0 * * * *",
		},
		Cache: Cache{
			MaxEntries: 1024,
			TTL:        5 * time.Minute,
		},
		Logging: Logging{
			Level:   "info",
			Service: "agentcare",
		},
	}
}
