// Package config provides configuration loading and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents runtime configuration loadable from a JSON file, with
// environment variables taking precedence. All fields are optional; missing
// values use defaults or CLI flags.
type Config struct {
	// Providers
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	Model         string `json:"model,omitempty"`          // Primary extraction model
	FallbackModel string `json:"fallback_model,omitempty"` // Fallback extraction model

	// Behavior
	CallTimeoutSeconds    int  `json:"call_timeout_seconds,omitempty"`    // Per-call deadline
	RecencyThresholdYears int  `json:"recency_threshold_years,omitempty"` // Degree recency window
	Verbose               bool `json:"verbose,omitempty"`                 // Print detailed breakdown

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	JWTSecret   string `json:"jwt_secret,omitempty"`   // HMAC secret for bearer auth
}

// LoadConfig loads configuration from a JSON file, then overlays environment
// variables. An empty path loads environment variables only.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("MATCH_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("MATCH_FALLBACK_MODEL"); v != "" {
		c.FallbackModel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("MATCH_CALL_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.CallTimeoutSeconds = seconds
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.CallTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'call_timeout_seconds' must be non-negative")
	}
	if c.RecencyThresholdYears < 0 {
		return fmt.Errorf("config error: 'recency_threshold_years' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. CLI flag values merge through here.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.FallbackModel == "" {
		result.FallbackModel = defaults.FallbackModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CallTimeoutSeconds == 0 {
		result.CallTimeoutSeconds = defaults.CallTimeoutSeconds
	}
	if result.RecencyThresholdYears == 0 {
		result.RecencyThresholdYears = defaults.RecencyThresholdYears
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
