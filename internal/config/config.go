// Package config loads focusd settings from FOCUSD_* environment variables,
// optionally overlaid by a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const Prefix = "FOCUSD"

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"production" yaml:"environment"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" yaml:"log_level"`
	// LogFile receives logs while the TUI owns the terminal. Empty means
	// <data dir>/focusd.log.
	LogFile string `envconfig:"LOG_FILE" yaml:"log_file"`

	// File is the optional YAML overlay. Only read from the environment.
	File string `envconfig:"CONFIG" yaml:"-"`

	// Storage
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"sqlite" yaml:"storage_backend"`
	StoragePath    string `envconfig:"STORAGE_PATH" yaml:"storage_path"`

	// Background sweeps
	WakeInterval    time.Duration `envconfig:"WAKE_INTERVAL" default:"60s" yaml:"wake_interval"`
	DrainInterval   time.Duration `envconfig:"DRAIN_INTERVAL" default:"10s" yaml:"drain_interval"`
	SnoozeDefault   time.Duration `envconfig:"SNOOZE_DEFAULT" default:"60m" yaml:"snooze_default"`
	SchedulerBuffer int           `envconfig:"SCHEDULER_BUFFER" default:"64" yaml:"scheduler_buffer"`

	// Focus timer
	FocusWork  time.Duration `envconfig:"FOCUS_WORK" default:"25m" yaml:"focus_work"`
	FocusBreak time.Duration `envconfig:"FOCUS_BREAK" default:"5m" yaml:"focus_break"`

	// AI collaborator. GROQ_API_KEY is accepted without the prefix.
	GroqAPIKey   string        `envconfig:"GROQ_API_KEY" yaml:"groq_api_key"`
	GroqModel    string        `envconfig:"GROQ_MODEL" default:"llama-3.1-8b-instant" yaml:"groq_model"`
	GroqBaseURL  string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1" yaml:"groq_base_url"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"30s" yaml:"ai_timeout"`
	AIMaxRetries int           `envconfig:"AI_MAX_RETRIES" default:"2" yaml:"ai_max_retries"`

	// Metrics are served on /metrics when set, e.g. "127.0.0.1:9464".
	MetricsAddr string `envconfig:"METRICS_ADDR" yaml:"metrics_addr"`
}

// Load reads FOCUSD_* variables and then the YAML file named by
// FOCUSD_CONFIG, if any. Values in the file win.
func Load() (*Config, error) {
	return LoadWithPrefix(Prefix)
}

func LoadWithPrefix(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config with prefix %s: %w", prefix, err)
	}
	if cfg.File != "" {
		if err := cfg.overlayFile(cfg.File); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var problems []string
	switch c.StorageBackend {
	case StorageSQLite, StorageFile:
	default:
		problems = append(problems, fmt.Sprintf("storage backend %q", c.StorageBackend))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log level %q", c.LogLevel))
	}
	for name, d := range map[string]time.Duration{
		"wake interval":  c.WakeInterval,
		"drain interval": c.DrainInterval,
		"snooze default": c.SnoozeDefault,
		"focus work":     c.FocusWork,
		"focus break":    c.FocusBreak,
		"ai timeout":     c.AITimeout,
	} {
		if d <= 0 {
			problems = append(problems, name+" must be positive")
		}
	}
	if c.AIMaxRetries < 0 {
		problems = append(problems, "ai max retries must not be negative")
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}

func (c *Config) Development() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c *Config) AIEnabled() bool {
	return strings.TrimSpace(c.GroqAPIKey) != ""
}

func (c *Config) MetricsEnabled() bool {
	return strings.TrimSpace(c.MetricsAddr) != ""
}

// DataDir is where focusd keeps its files when no explicit path is set.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, "focusd"), nil
}

// ResolveStoragePath returns StoragePath, or a backend-specific default
// under DataDir.
func (c *Config) ResolveStoragePath() (string, error) {
	if c.StoragePath != "" {
		return c.StoragePath, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if c.StorageBackend == StorageFile {
		return filepath.Join(dir, "state.json"), nil
	}
	return filepath.Join(dir, "focusd.db"), nil
}

func (c *Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "focusd.log"), nil
}
