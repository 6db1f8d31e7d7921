// Package config provides YAML configuration parsing for tickerfeed.
//
// This package enables running tickerfeed as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Stock Ticker
//	port: 8080
//	update_interval_seconds: 5
//
//	stocks:
//	  - symbol: AAPL
//	    name: Apple
//	    price: 150.00
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// defaultPort is used when no port is configured.
	defaultPort = 8080

	// defaultUpdateIntervalSeconds is used when no interval is configured.
	// An explicitly configured interval below one second is a fatal
	// configuration error, not a value to silently correct.
	defaultUpdateIntervalSeconds = 5
)

// Config is the root configuration structure for tickerfeed.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "Tickerfeed" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// UpdateIntervalSeconds is the number of seconds between simulated
	// price updates. Must be at least 1. Defaults to 5 when omitted;
	// a pointer distinguishes "omitted" from an explicit zero, which is
	// rejected.
	UpdateIntervalSeconds *int `yaml:"update_interval_seconds"`

	// Stocks is the seed list loaded into the store before the update
	// loop starts.
	Stocks []StockConfig `yaml:"stocks"`
}

// StockConfig defines a single seed record.
type StockConfig struct {
	// Symbol is the unique ticker symbol.
	Symbol string `yaml:"symbol"`

	// Name is the company display name.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Name string `yaml:"name"`

	// Price is the starting price. Must not be negative.
	Price float64 `yaml:"price"`
}

// UpdateInterval returns the configured interval as a [time.Duration].
// Call only after [Parse] has applied defaults and validation.
func (c *Config) UpdateInterval() time.Duration {
	if c.UpdateIntervalSeconds == nil {
		return defaultUpdateIntervalSeconds * time.Second
	}
	return time.Duration(*c.UpdateIntervalSeconds) * time.Second
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in stock names. Defaults are applied
// for Port (8080) and UpdateIntervalSeconds (5); an explicitly configured
// interval below one second fails validation so the process never starts
// with it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.UpdateIntervalSeconds != nil && *c.UpdateIntervalSeconds < 1 {
		return fmt.Errorf("update_interval_seconds must be at least 1, got %d", *c.UpdateIntervalSeconds)
	}

	seen := make(map[string]struct{}, len(c.Stocks))
	for i := range c.Stocks {
		sc := &c.Stocks[i]

		if sc.Symbol == "" {
			return fmt.Errorf("stocks[%d]: symbol is required", i)
		}

		if sc.Name == "" {
			return fmt.Errorf("stocks[%d] (%s): name is required", i, sc.Symbol)
		}
		expanded, err := expandEnvVars(sc.Name)
		if err != nil {
			return fmt.Errorf("stocks[%d] (%s): name: %w", i, sc.Symbol, err)
		}
		sc.Name = expanded

		if sc.Price < 0 {
			return fmt.Errorf("stocks[%d] (%s): price cannot be negative, got %v", i, sc.Symbol, sc.Price)
		}

		if _, exists := seen[sc.Symbol]; exists {
			return fmt.Errorf("stocks[%d]: duplicate symbol %q", i, sc.Symbol)
		}
		seen[sc.Symbol] = struct{}{}
	}

	if len(c.Stocks) == 0 {
		return errors.New("at least one stock must be defined")
	}

	return nil
}
