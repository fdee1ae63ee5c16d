// Package config loads safety360 settings from YAML with environment
// overrides. A missing config file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/safety360/internal/store"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds every setting.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	UI        UIConfig        `yaml:"ui"`
	Checklist ChecklistConfig `yaml:"checklist"`
	Report    ReportConfig    `yaml:"report"`
	Presets   PresetsConfig   `yaml:"presets"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StorageConfig selects where the state snapshot lives.
type StorageConfig struct {
	Backend string `yaml:"backend"`  // json | sqlite
	DataDir string `yaml:"data_dir"` // json files or the sqlite db go here
	Key     string `yaml:"key"`
}

type UIConfig struct {
	Theme string `yaml:"theme"` // classic | neon | mono
}

type ChecklistConfig struct {
	SnoozeDays   int `yaml:"snooze_days"`
	ScheduleSize int `yaml:"schedule_size"`
}

type ReportConfig struct {
	OutDir string `yaml:"out_dir"`
}

// PresetsConfig points at the spreadsheet-backed preset API.
type PresetsConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	JSON  bool   `yaml:"json"`
}

// DefaultPresetsURL is the published preset endpoint.
const DefaultPresetsURL = "https://script.google.com/macros/s/AKfycbzXM4ewfNZmBDi5gYszoLTZSvSWMaktHyvmvTaI3E-HcVy4_OKQIFwTWZHDbiEIlGOn/exec"

// Dir is ~/.safety360, falling back to the working directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".safety360"
	}
	return filepath.Join(home, ".safety360")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string { return filepath.Join(Dir(), "config.yaml") }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			DataDir: Dir(),
			Key:     store.DefaultKey,
		},
		UI:        UIConfig{Theme: "classic"},
		Checklist: ChecklistConfig{SnoozeDays: 3, ScheduleSize: 5},
		Report:    ReportConfig{OutDir: "."},
		Presets:   PresetsConfig{BaseURL: DefaultPresetsURL},
		Logging:   LoggingConfig{Level: "warn", JSON: true},
	}
}

// Load reads path over the defaults, then applies SAFETY360_* environment
// overrides and validates the result. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			*dst = v
		}
	}
	set("SAFETY360_DATA_DIR", &c.Storage.DataDir)
	set("SAFETY360_BACKEND", &c.Storage.Backend)
	set("SAFETY360_PRESETS_URL", &c.Presets.BaseURL)
	set("SAFETY360_THEME", &c.UI.Theme)
	set("SAFETY360_LOG_LEVEL", &c.Logging.Level)
	if v := strings.TrimSpace(getenv("SAFETY360_SNOOZE_DAYS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SAFETY360_SNOOZE_DAYS: %w", err)
		}
		c.Checklist.SnoozeDays = n
	}
	return nil
}

// Validate rejects settings the tracker cannot run with.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend %q: must be %q or %q", c.Storage.Backend, BackendJSON, BackendSQLite)
	}
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return errors.New("storage.data_dir is empty")
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("storage.key is empty")
	}
	if c.Checklist.SnoozeDays < 1 {
		return fmt.Errorf("checklist.snooze_days must be at least 1, got %d", c.Checklist.SnoozeDays)
	}
	if c.Checklist.ScheduleSize < 1 {
		return fmt.Errorf("checklist.schedule_size must be at least 1, got %d", c.Checklist.ScheduleSize)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: must be debug, info, warn or error", c.Logging.Level)
	}
	return nil
}
