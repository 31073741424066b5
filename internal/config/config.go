package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/stguard/internal/fdfind"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type SearchConfig struct {
	Binaries           []string `yaml:"binaries,omitempty"`
	Attempts           int      `yaml:"attempts,omitempty"`
	RetryDelay         string   `yaml:"retry_delay,omitempty"`
	TransientExitCodes []int    `yaml:"transient_exit_codes,omitempty"`
}

// IgnoreRule describes findings that are known and accepted.
// All non-empty fields of a rule must match for it to apply.
type IgnoreRule struct {
	ID         string `yaml:"id,omitempty"`
	Category   string `yaml:"category,omitempty"`
	Path       string `yaml:"path,omitempty"`
	Under      string `yaml:"under,omitempty"`
	Regex      string `yaml:"regex,omitempty"`
	AllowChars string `yaml:"allow_chars,omitempty"`
}

// IsEmpty reports whether no field of the rule is set. An empty rule would
// match every finding and is rejected by validation.
func (r IgnoreRule) IsEmpty() bool {
	return r == IgnoreRule{}
}

type Config struct {
	Search SearchConfig `yaml:"search"`
	Ignore []IgnoreRule `yaml:"ignore"`
}

const ConfigFileName = stguard.ConfigFileName

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, defaults and validates the config file at configPath.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: %w", stguard.ErrInvalidConfig, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", stguard.ErrInvalidConfig, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Search.Binaries) == 0 {
		c.Search.Binaries = append([]string(nil), stguard.DefaultSearchBinaries...)
	}
	if c.Search.Attempts == 0 {
		c.Search.Attempts = stguard.DefaultSearchAttempts
	}
	if c.Search.RetryDelay == "" {
		c.Search.RetryDelay = stguard.DefaultSearchRetryDelay.String()
	}
	if len(c.Search.TransientExitCodes) == 0 {
		c.Search.TransientExitCodes = []int{stguard.DefaultTransientExitCode}
	}
}

// Validate checks the search settings and the shape of every ignore rule.
// Patterns inside rules are compiled by the suppress package.
func (c *Config) Validate() error {
	if c.Search.Attempts < 1 {
		return fmt.Errorf("%w: search.attempts must be at least 1, got %d", stguard.ErrInvalidConfig, c.Search.Attempts)
	}
	for _, b := range c.Search.Binaries {
		if b == "" {
			return fmt.Errorf("%w: search.binaries contains an empty name", stguard.ErrInvalidConfig)
		}
	}
	if _, err := c.RetryDelay(); err != nil {
		return err
	}
	for _, code := range c.Search.TransientExitCodes {
		if code <= 0 || code > 255 {
			return fmt.Errorf("%w: search.transient_exit_codes: %d is not a failing exit code", stguard.ErrInvalidConfig, code)
		}
	}
	for i, rule := range c.Ignore {
		if rule.IsEmpty() {
			return fmt.Errorf("%w: ignore[%d] has no fields and would match everything", stguard.ErrInvalidConfig, i)
		}
	}
	return nil
}

// RetryDelay returns search.retry_delay as a duration.
func (c *Config) RetryDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Search.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("%w: search.retry_delay: %w", stguard.ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: search.retry_delay must be positive, got %s", stguard.ErrInvalidConfig, d)
	}
	return d, nil
}

// SearchOptions converts the search section into fd invoker options.
// The config must have been validated.
func (c *Config) SearchOptions() fdfind.Options {
	delay, _ := c.RetryDelay()
	return fdfind.Options{
		Binaries:           c.Search.Binaries,
		Attempts:           c.Search.Attempts,
		RetryDelay:         delay,
		TransientExitCodes: c.Search.TransientExitCodes,
	}
}
