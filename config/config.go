// Package config loads the VM host's configuration: fuel budget, which
// capability backends to wire (store/vector/llm) and how to reach them,
// and which procedure-store engine to run. It follows the teacher's own
// config layering — a YAML file read into a struct with sane defaults,
// then environment-variable overrides for secrets and deployment-specific
// endpoints that shouldn't live in a checked-in file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level VM host configuration.
type Config struct {
	// FuelBudget is the default per-run fuel allowance (spec §5) unless a
	// caller overrides it per invocation.
	FuelBudget int64 `yaml:"fuel_budget"`

	Store  StoreConfig  `yaml:"store"`
	Vector VectorConfig `yaml:"vector"`
	LLM    LLMConfig    `yaml:"llm"`
	Engine EngineConfig `yaml:"engine"`
}

// StoreConfig selects and configures the `store` capability backend.
type StoreConfig struct {
	// Backend is "memory" (default) or "redis".
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redis_addr"`
	KeyPrefix string `yaml:"key_prefix"`
}

// VectorConfig selects and configures the `vector` capability backend.
type VectorConfig struct {
	// Backend is "" (disabled, default) or "mongo".
	Backend       string `yaml:"backend"`
	MongoURI      string `yaml:"mongo_uri"`
	Database      string `yaml:"database"`
	IndexName     string `yaml:"index_name"`
	EmbeddingPath string `yaml:"embedding_path"`
}

// LLMConfig selects and configures the `llm` capability backend.
type LLMConfig struct {
	// Provider is "" (disabled, default), "anthropic", "openai", or
	// "bedrock".
	Provider     string `yaml:"provider"`
	APIKey       string `yaml:"api_key"`
	DefaultModel string `yaml:"default_model"`
	Region       string `yaml:"region"` // bedrock only

	// RequestsPerMinute, if positive, wraps the built client in
	// capability/llm/ratelimit so a misbehaving procedure can't blow
	// through provider quota just because it still has fuel left.
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
}

// EngineConfig selects the procedure-token engine backend.
type EngineConfig struct {
	// Backend is "inmem" (default) or "temporal".
	Backend          string `yaml:"backend"`
	TemporalHostPort string `yaml:"temporal_host_port"`
	TemporalTaskQueue string `yaml:"temporal_task_queue"`
}

// Default returns a Config with the always-safe local-development
// defaults: an in-memory store, no vector/llm backend, and the in-memory
// procedure engine.
func Default() *Config {
	return &Config{
		FuelBudget: 1_000_000,
		Store:      StoreConfig{Backend: "memory"},
		Engine:     EngineConfig{Backend: "inmem"},
	}
}

// Load reads path as YAML over Default(), then applies environment
// overrides. A missing file is not an error: Default() (plus env
// overrides) is returned as-is, mirroring how the teacher's own config
// loader treats a missing config file as "use defaults" rather than a
// fatal error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TJS_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("TJS_MONGO_URI"); v != "" {
		c.Vector.MongoURI = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.LLM.Provider == "anthropic" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.Provider == "openai" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("TJS_TEMPORAL_HOST_PORT"); v != "" {
		c.Engine.TemporalHostPort = v
	}
}
