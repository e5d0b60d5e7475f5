// Package config provides environment-driven configuration for the diary.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"

	"github.com/nova728/diary/internal/errors"
)

const (
	// AppName is the application name used for data directories.
	AppName = "diary"

	// InMemoryDatabase selects a throwaway in-memory database.
	InMemoryDatabase = ":memory:"
)

// Config holds every setting read from the environment.
type Config struct {
	// Database is the database directory, or ":memory:". Empty means the XDG data dir.
	Database string `env:"DIARY_DATABASE"`

	// User is the ID all commands act on behalf of.
	User string `env:"DIARY_USER" envDefault:"me"`

	// Timezone is the IANA zone whose calendar defines "today". Empty means local time.
	Timezone string `env:"DIARY_TIMEZONE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"DIARY_LOG_LEVEL" envDefault:"warn"`

	// LogJSON switches log output to JSON.
	LogJSON bool `env:"DIARY_LOG_JSON"`

	// LogFile additionally writes logs to a rotating file under the XDG state dir.
	LogFile bool `env:"DIARY_LOG_FILE"`

	// TimelineLimit is the default timeline page size.
	TimelineLimit int `env:"DIARY_TIMELINE_LIMIT" envDefault:"50"`

	// ListLimit is the default entry list page size.
	ListLimit int `env:"DIARY_LIST_LIMIT" envDefault:"20"`

	// ReminderWebhook is an optional URL reminders are also posted to.
	ReminderWebhook string `env:"DIARY_REMINDER_WEBHOOK"`

	// ReminderWebhookType is the payload flavour: generic, slack or discord.
	ReminderWebhookType string `env:"DIARY_REMINDER_WEBHOOK_TYPE" envDefault:"generic"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if err := ValidateUser(c.User); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.TimelineLimit < 1 || c.ListLimit < 1 {
		return errors.NewUserError("Page sizes must be positive",
			"Set DIARY_TIMELINE_LIMIT and DIARY_LIST_LIMIT to values of at least 1")
	}
	return nil
}

// ValidateUser checks that id can be used as a key segment.
func ValidateUser(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewUserErrorWithField("user", id,
			"User cannot be empty", "Set DIARY_USER or pass --user")
	}
	if strings.Contains(id, ":") {
		return errors.NewUserErrorWithField("user", id,
			"User cannot contain ':'", "Pick a user name without colons")
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &errors.UserError{
			Message: "Unknown timezone",
			Field:   "DIARY_TIMEZONE",
			Value:   c.Timezone,
			Cause:   errors.ErrInvalidTimezone,
		}
	}
	return loc, nil
}

// InMemory reports whether the database should live in memory only.
func (c Config) InMemory() bool {
	return c.Database == InMemoryDatabase
}

// DatabasePath returns the database directory.
func (c Config) DatabasePath() string {
	if c.Database == "" {
		return DefaultDatabasePath()
	}
	return c.Database
}

// DefaultDatabasePath returns the default database path following the XDG spec.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// LogFilePath returns the rotating log file location, or "" when file logging is off.
func (c Config) LogFilePath() string {
	if !c.LogFile {
		return ""
	}
	return filepath.Join(xdg.StateHome, AppName, "diary.log")
}
