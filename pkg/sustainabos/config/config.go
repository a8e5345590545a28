// Package config loads the service configuration from YAML and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/logging"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/parser"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/source"
)

// Config holds the service configuration.
type Config struct {
	// Workbook is a local path or an "s3://bucket/key" URI.
	Workbook  string                       `yaml:"workbook"`
	S3        source.S3Config              `yaml:"s3"`
	Layout    parser.Layout                `yaml:"layout"`
	Server    ServerConfig                 `yaml:"server"`
	Logging   logging.Config               `yaml:"logging"`
	Analytics sustainabos.AnalyticsOptions `yaml:"analytics"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	opts := sustainabos.DefaultOptions()
	return &Config{
		Workbook: opts.Source,
		Layout:   opts.Layout,
		Server: ServerConfig{
			Addr:            ":5000",
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "15s",
		},
		Logging:   logging.DefaultConfig(),
		Analytics: opts.Analytics,
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("SUSTAINABOS_WORKBOOK"); path != "" {
		c.Workbook = path
	}

	// PORT is set by most hosting platforms; an explicit address wins.
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := os.Getenv("SUSTAINABOS_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	if level := os.Getenv("SUSTAINABOS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if endpoint := os.Getenv("SUSTAINABOS_S3_ENDPOINT"); endpoint != "" {
		c.S3.Endpoint = endpoint
	}
	if region := os.Getenv("SUSTAINABOS_S3_REGION"); region != "" {
		c.S3.Region = region
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		c.S3.AccessKeyID = key
	}
	if secret := os.Getenv("AWS_SECRET_ACCESS_KEY"); secret != "" {
		c.S3.SecretAccessKey = secret
	}
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 10*time.Second)
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 15*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Workbook == "" {
		return fmt.Errorf("workbook source not configured (set workbook or SUSTAINABOS_WORKBOOK)")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server address not configured")
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if c.Analytics.Limit < 0 {
		return fmt.Errorf("analytics limit must be >= 0, got %d", c.Analytics.Limit)
	}
	return nil
}

// Options returns the store options for this configuration.
func (c *Config) Options() sustainabos.Options {
	return sustainabos.Options{
		Source:    c.Workbook,
		S3:        c.S3,
		Layout:    c.Layout,
		Analytics: c.Analytics,
	}
}
