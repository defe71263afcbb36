package config

import (
	"time"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/rules"
)

// Env holds process configuration read from the environment once at
// startup. Immutable thereafter.
type Env struct {
	// APIToken authenticates outbound monday.com API calls.
	APIToken string `env:"MONDAY_API_TOKEN"`

	// SigningSecret verifies inbound webhook signatures. Empty means
	// verification is skipped (local development only).
	SigningSecret string `env:"MONDAY_SIGNING_SECRET"`

	// StatusColumnID is the target status column written on each update.
	StatusColumnID string `env:"STATUS_COLUMN_ID" envDefault:"status"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"json"`

	// RulesFile points at the YAML file holding rules, filter and retry
	// settings. Optional: defaults apply when the file is absent.
	RulesFile string `env:"RULES_FILE" envDefault:"rules.yaml"`

	// APIURL overrides the monday.com endpoint (tests, mock servers).
	APIURL string `env:"MONDAY_API_URL" envDefault:"https://api.monday.com/v2"`
}

// FilterConfig controls which column-change events are processed.
type FilterConfig struct {
	// AllowedColumnTypes is the allow-list; empty means allow all.
	AllowedColumnTypes []string `yaml:"allowed_column_types"`

	// IgnoredColumnTypes is checked first. Status-type columns live here
	// so that our own writes never loop back through the pipeline.
	IgnoredColumnTypes []string `yaml:"ignored_column_types"`

	// RequireColumnType rejects events missing a columnType field.
	// Default false: such events pass through with a warning.
	RequireColumnType bool `yaml:"require_column_type"`
}

// RetryConfig controls backoff on rate-limited API calls.
type RetryConfig struct {
	MaxRetries   int           `yaml:"max_retries"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Multiplier   float64       `yaml:"backoff_multiplier"`
}

// Rules is the file-backed part of the configuration.
type Rules struct {
	Filter FilterConfig  `yaml:"filter"`
	Retry  RetryConfig   `yaml:"retry"`
	Rules  rules.Ruleset `yaml:"rules"`

	// QueueSize bounds the background processing queue.
	QueueSize int `yaml:"queue_size"`

	// Workers is the number of background processing goroutines.
	Workers int `yaml:"workers"`
}

// Config is the complete immutable runtime configuration.
type Config struct {
	Env   Env
	Rules Rules

	// RulesFingerprint is the BLAKE3 hash of the rules file, empty when
	// running on defaults.
	RulesFingerprint string
}

// DefaultRules returns the built-in file configuration used when no
// rules file exists.
func DefaultRules() Rules {
	return Rules{
		Filter: FilterConfig{
			AllowedColumnTypes: []string{"formula"},
			IgnoredColumnTypes: []string{"status", "color"},
		},
		Retry: RetryConfig{
			MaxRetries:   3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     10 * time.Second,
			Multiplier:   2,
		},
		Rules:     rules.Default(),
		QueueSize: 64,
		Workers:   1,
	}
}
