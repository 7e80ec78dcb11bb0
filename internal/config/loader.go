package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the conventional config file name looked up in
// the working directory.
const DefaultConfigFile = "agentcare.yaml"

// Load builds the configuration from defaults, the default YAML file
// and environment variables, in that order of precedence.
func Load() (Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom is Load with an explicit YAML file path. A missing file is
// not an error; defaults and environment still apply.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, path); err != nil {
		return Config{}, err
	}
	loadEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "AGENTCARE_PORT")
	setString(&cfg.Server.CORSOrigin, "AGENTCARE_CORS_ORIGIN")

	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.OpenAI.Model, "AGENTCARE_MODEL")

	setInt(&cfg.Conversation.HopLimit, "AGENTCARE_HOP_LIMIT")
	setDuration(&cfg.Conversation.TurnTimeout, "AGENTCARE_TURN_TIMEOUT")

	setString(&cfg.Artifacts.Dir, "AGENTCARE_ARTIFACTS_DIR")
	setDuration(&cfg.Artifacts.MaxAge, "AGENTCARE_ARTIFACTS_MAX_AGE")
	setString(&cfg.Artifacts.CleanupSchedule, "AGENTCARE_CLEANUP_SCHEDULE")

	setInt64(&cfg.Cache.MaxEntries, "AGENTCARE_CACHE_ENTRIES")
	setDuration(&cfg.Cache.TTL, "AGENTCARE_CACHE_TTL")

	setString(&cfg.Logging.Level, "AGENTCARE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "AGENTCARE_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "AGENTCARE_LOG_ASYNC")

	setString(&cfg.Telemetry.OTLPEndpoint, "AGENTCARE_OTLP_ENDPOINT")
}

func (c Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Conversation.HopLimit < 0 {
		return fmt.Errorf("conversation hop limit must not be negative")
	}
	if c.Conversation.TurnTimeout < 0 {
		return fmt.Errorf("conversation turn timeout must not be negative")
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts dir must not be empty")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
