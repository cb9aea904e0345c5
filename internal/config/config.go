// Package config loads and persists the application's YAML configuration,
// with environment-variable overrides for credentials.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/dayplan/internal/timetext"
)

// Calendar backend names.
const (
	BackendREST = "rest"
	BackendICS  = "ics"
)

// JournalConfig holds journal-store credentials.
type JournalConfig struct {
	// Token is the Notion integration token.
	Token string `yaml:"token"`
	// DatabaseID identifies the journal database.
	DatabaseID string `yaml:"database_id"`
}

// CalendarConfig selects and configures the calendar backend.
type CalendarConfig struct {
	// Backend is "rest" or "ics".
	Backend string `yaml:"backend"`
	// BaseURL is the calendar service endpoint for the rest backend.
	BaseURL string `yaml:"base_url"`
	// Token authenticates against the rest backend.
	Token string `yaml:"token"`
	// ICSPath is the calendar file for the ics backend.
	ICSPath string `yaml:"ics_path"`
}

// PlannerConfig bounds the working day.
type PlannerConfig struct {
	WorkStart string `yaml:"work_start"`
	WorkEnd   string `yaml:"work_end"`
}

// Config is the top-level application configuration.
type Config struct {
	Journal  JournalConfig  `yaml:"journal"`
	Calendar CalendarConfig `yaml:"calendar"`
	Planner  PlannerConfig  `yaml:"planner"`

	// Timezone is the IANA zone used to interpret calendar times.
	Timezone string `yaml:"timezone"`

	// HistoryDB is the SQLite file recording pipeline runs.
	HistoryDB string `yaml:"history_db"`
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dayplan"
	}
	return filepath.Join(home, ".dayplan")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Calendar:  CalendarConfig{Backend: BackendREST},
		Planner:   PlannerConfig{WorkStart: "08:00", WorkEnd: "20:00"},
		Timezone:  "Local",
		HistoryDB: filepath.Join(DefaultDir(), "history.db"),
	}
}

// Normalize fills missing values with defaults so partially filled configs
// still behave.
func (c *Config) Normalize() {
	if c.Planner.WorkStart == "" {
		c.Planner.WorkStart = "08:00"
	}
	if c.Planner.WorkEnd == "" {
		c.Planner.WorkEnd = "20:00"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.HistoryDB == "" {
		c.HistoryDB = filepath.Join(DefaultDir(), "history.db")
	}
	switch c.Calendar.Backend {
	case BackendREST, BackendICS:
	case "":
		if c.Calendar.ICSPath != "" {
			c.Calendar.Backend = BackendICS
		} else {
			c.Calendar.Backend = BackendREST
		}
	default:
		c.Calendar.Backend = BackendREST
	}
}

// applyEnv overlays credential and endpoint overrides from the
// environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		c.Journal.Token = v
	}
	if v := os.Getenv("DATABASE_ID"); v != "" {
		c.Journal.DatabaseID = v
	}
	if v := os.Getenv("DAYPLAN_CALENDAR_URL"); v != "" {
		c.Calendar.BaseURL = v
		c.Calendar.Backend = BackendREST
	}
	if v := os.Getenv("DAYPLAN_CALENDAR_TOKEN"); v != "" {
		c.Calendar.Token = v
	}
	if v := os.Getenv("DAYPLAN_CALENDAR_ICS"); v != "" {
		c.Calendar.ICSPath = v
		c.Calendar.Backend = BackendICS
	}
	if v := os.Getenv("DAYPLAN_HISTORY_DB"); v != "" {
		c.HistoryDB = v
	}
}

// WorkWindow resolves the configured working hours to minutes from
// midnight.
func (c *Config) WorkWindow() (start, end int, err error) {
	start, err = timetext.ClockToMinutes(c.Planner.WorkStart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid work_start: %w", err)
	}
	end, err = timetext.ClockToMinutes(c.Planner.WorkEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid work_end: %w", err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("work_start %s is not before work_end %s", c.Planner.WorkStart, c.Planner.WorkEnd)
	}
	return start, end, nil
}

// Load reads configuration from the given YAML path. A missing file is
// created with defaults. Environment overrides apply after the file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	cfg.applyEnv()

	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".dayplan-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
