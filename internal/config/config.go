// Package config provides configuration management for the price ETL pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL     = errors.New("crawler.base_url is required")
	ErrMissingDBHost      = errors.New("database.host is required")
	ErrMissingDBName      = errors.New("database.name is required")
	ErrMissingDBUser      = errors.New("database.user is required")
	ErrInvalidMaxAttempts = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidDelay       = errors.New("retry.delay_ms must be non-negative")
	ErrInvalidTimeout     = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingOutputPath  = errors.New("output.base_path is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Crawler  CrawlerConfig  `yaml:"crawler"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig contains Postgres connection settings. The password may
// come from the DB_PASSWORD environment variable instead of the file.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds the Postgres connection string.
func (d *DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode,
	)
}

// CrawlerConfig contains crawl settings.
type CrawlerConfig struct {
	BaseURL string      `yaml:"base_url"`
	Retry   RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines fetch retry behavior. Retries block the calling
// goroutine for a fixed delay between attempts.
type RetryPolicy struct {
	MaxAttempts int `yaml:"max_attempts"`
	DelayMs     int `yaml:"delay_ms"`
	TimeoutSec  int `yaml:"timeout_sec"`
}

// GetRetryDelay returns the fixed delay before the given attempt.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	return time.Duration(rp.DelayMs) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// OutputConfig defines CSV output behavior.
type OutputConfig struct {
	BasePath  string `yaml:"base_path"`
	FinalName string `yaml:"final_name"`
}

// GetFinalName returns the aggregate CSV file name.
func (o *OutputConfig) GetFinalName() string {
	if o.FinalName != "" {
		return o.FinalName
	}

	return "facua_extracted_auto.csv"
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration with sensible defaults for a
// full crawl of the public price-comparison site.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "comparativa_supermercados",
			SSLMode: "disable",
		},
		Crawler: CrawlerConfig{
			BaseURL: "https://super.facua.org/",
			Retry: RetryPolicy{
				MaxAttempts: 3,
				DelayMs:     5000,
				TimeoutSec:  30,
			},
		},
		Output: OutputConfig{
			BasePath: "data/extracted",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file, applying defaults for
// omitted fields and the DB_PASSWORD environment override.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if pw := os.Getenv("DB_PASSWORD"); pw != "" {
		cfg.Database.Password = pw
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Crawler.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.Database.Host == "" {
		return ErrMissingDBHost
	}

	if c.Database.Name == "" {
		return ErrMissingDBName
	}

	if c.Database.User == "" {
		return ErrMissingDBUser
	}

	if c.Crawler.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Crawler.Retry.DelayMs < 0 {
		return ErrInvalidDelay
	}

	if c.Crawler.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, Database: %s@%s:%d/%s, Output: %s}",
		c.Crawler.BaseURL,
		c.Database.User,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Output.BasePath,
	)
}
