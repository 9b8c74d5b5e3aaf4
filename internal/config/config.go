// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"meteorsim/internal/impact"
)

// RemoteConfig points the engine at the external computation service.
// An empty endpoint disables the remote path entirely.
type RemoteConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
}

// KafkaConfig configures the optional Kafka result writer.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// GreptimeConfig configures the optional GreptimeDB result writer.
type GreptimeConfig struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// NASAConfig configures the NEO feed client and its persisted cache.
type NASAConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	CachePath string `yaml:"cache_path"`
}

// SimulationConfig is the root configuration for the impact engine.
type SimulationConfig struct {
	Remote          RemoteConfig         `yaml:"remote"`
	HistoryCapacity int                  `yaml:"history_capacity"`
	Densities       impact.EffectsConfig `yaml:"densities"`
	Kafka           KafkaConfig          `yaml:"kafka"`
	Greptime        GreptimeConfig       `yaml:"greptime"`
	NASA            NASAConfig           `yaml:"nasa"`
}

// DefaultRemoteTimeout bounds the remote computation attempt before the
// engine falls back to local computation.
const DefaultRemoteTimeout = 5 * time.Second

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *SimulationConfig) {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = 10
	}
	if cfg.Densities == (impact.EffectsConfig{}) {
		cfg.Densities = impact.DefaultEffectsConfig()
	}
	if cfg.Greptime.Database == "" {
		cfg.Greptime.Database = "public"
	}
}

// RemoteTimeout parses the configured remote timeout, falling back to the
// default for empty or malformed values.
func (c *SimulationConfig) RemoteTimeout() time.Duration {
	if c.Remote.Timeout == "" {
		return DefaultRemoteTimeout
	}
	d, err := time.ParseDuration(c.Remote.Timeout)
	if err != nil || d <= 0 {
		return DefaultRemoteTimeout
	}
	return d
}

// Default returns a configuration with stock values, used when no config
// file is supplied.
func Default() *SimulationConfig {
	cfg := &SimulationConfig{}
	applyDefaults(cfg)
	return cfg
}

// String renders a compact summary for startup logging.
func (c *SimulationConfig) String() string {
	remote := c.Remote.Endpoint
	if remote == "" {
		remote = "(local only)"
	}
	return fmt.Sprintf("remote=%s timeout=%s history=%d", remote, c.RemoteTimeout(), c.HistoryCapacity)
}
