// Package config loads server configuration from defaults, an optional
// YAML file, and UNIPROT_MCP_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/uniprot-mcp-go/pkg/uniprot"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	UniProt UniProtConfig `yaml:"uniprot"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig identifies the server to clients
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// UniProtConfig configures the upstream REST clients
type UniProtConfig struct {
	BaseURL          string   `yaml:"base_url"`
	Timeout          Duration `yaml:"timeout"`
	BatchSize        int      `yaml:"batch_size"`
	FetchConcurrency int      `yaml:"fetch_concurrency"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// Format is text or json
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// TracingConfig configures OTLP trace export
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sample_rate"`
}

// Default returns the configuration used when nothing else is given
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:    "uniprot-mcp",
			Version: "1.0.0",
		},
		UniProt: UniProtConfig{
			BaseURL:          uniprot.DefaultBaseURL,
			Timeout:          Duration(uniprot.DefaultTimeout),
			BatchSize:        uniprot.DefaultBatchSize,
			FetchConcurrency: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: ":9090",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			SampleRate: 1.0,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("UNIPROT_MCP_BASE_URL"); v != "" {
		c.UniProt.BaseURL = v
	}
	if v := os.Getenv("UNIPROT_MCP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UNIPROT_MCP_TIMEOUT: %w", err)
		}
		c.UniProt.Timeout = Duration(parsed)
	}
	if v := os.Getenv("UNIPROT_MCP_BATCH_SIZE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UNIPROT_MCP_BATCH_SIZE: %w", err)
		}
		c.UniProt.BatchSize = parsed
	}
	if v := os.Getenv("UNIPROT_MCP_FETCH_CONCURRENCY"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UNIPROT_MCP_FETCH_CONCURRENCY: %w", err)
		}
		c.UniProt.FetchConcurrency = parsed
	}
	if v := os.Getenv("UNIPROT_MCP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("UNIPROT_MCP_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("UNIPROT_MCP_METRICS_ADDR"); v != "" {
		c.Metrics.Enabled = true
		c.Metrics.ListenAddr = v
	}
	if v := os.Getenv("UNIPROT_MCP_TRACING_ENDPOINT"); v != "" {
		c.Tracing.Enabled = true
		c.Tracing.Endpoint = v
	}
	return nil
}

// Validate rejects configurations the server cannot run with
func (c Config) Validate() error {
	if c.UniProt.BaseURL == "" {
		return fmt.Errorf("uniprot.base_url must not be empty")
	}
	if c.UniProt.Timeout <= 0 {
		return fmt.Errorf("uniprot.timeout must be positive")
	}
	if c.UniProt.BatchSize <= 0 {
		return fmt.Errorf("uniprot.batch_size must be positive")
	}
	if c.UniProt.FetchConcurrency <= 0 {
		return fmt.Errorf("uniprot.fetch_concurrency must be positive")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be within [0, 1]")
	}
	return nil
}
