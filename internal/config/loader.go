package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// Load builds the full configuration: .env file (optional), environment
// variables, then the rules file named by RULES_FILE (optional, defaults
// apply when absent).
func Load() (*Config, error) {
	// Best effort: a missing .env is normal outside local development.
	_ = godotenv.Load(".env")

	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg := &Config{Env: e, Rules: DefaultRules()}

	if e.RulesFile != "" {
		r, fingerprint, err := loadRulesFile(e.RulesFile)
		if err != nil {
			return nil, err
		}
		if r != nil {
			cfg.Rules = *r
			cfg.RulesFingerprint = fingerprint
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadRulesFile parses a rules YAML file and returns it with its BLAKE3
// fingerprint. A missing file returns (nil, "", nil): defaults apply.
func loadRulesFile(path string) (*Rules, string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("read rules file %q: %w", path, err)
	}

	r := DefaultRules()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, "", fmt.Errorf("parse rules file %q: %w", path, err)
	}

	hash := blake3.Sum256(data)
	return &r, hex.EncodeToString(hash[:]), nil
}

func validate(cfg *Config) error {
	if err := cfg.Rules.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	rc := cfg.Rules.Retry
	if rc.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must be >= 0")
	}
	if rc.InitialDelay <= 0 {
		return fmt.Errorf("retry.initial_delay must be positive")
	}
	if rc.MaxDelay < rc.InitialDelay {
		return fmt.Errorf("retry.max_delay must be >= retry.initial_delay")
	}
	if rc.Multiplier < 1 {
		return fmt.Errorf("retry.backoff_multiplier must be >= 1")
	}

	if cfg.Rules.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be positive")
	}
	if cfg.Rules.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if cfg.Env.StatusColumnID == "" {
		return fmt.Errorf("STATUS_COLUMN_ID must not be empty")
	}
	if cfg.Env.APIURL == "" {
		return fmt.Errorf("MONDAY_API_URL must not be empty")
	}
	return nil
}
