// Package config loads the recordcheck TOML configuration.
package config

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/andaru/collectxml/record"
	"github.com/andaru/collectxml/users"
)

// Config is the recordcheck configuration.
type Config struct {
	Users Users `toml:"users"`
	Parse Parse `toml:"parse"`
}

// Users configures the user directory.
type Users struct {
	// Database is the SQLite database path; empty keeps users in memory
	Database        string     `toml:"database"`
	DefaultPassword string     `toml:"default_password"`
	DefaultRole     users.Role `toml:"default_role"`
}

// Parse configures record parsing.
type Parse struct {
	Step record.Step `toml:"step"`
	// FailOn is a boolean expression over failures, warnings, hasRecord
	// and filled deciding whether a parse fails
	FailOn string `toml:"fail_on"`
}

// DefaultFailOn fails parses that recorded any failure.
const DefaultFailOn = "failures > 0"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Users: Users{
			DefaultPassword: users.DefaultPassword,
			DefaultRole:     users.DefaultRole,
		},
		Parse: Parse{
			Step:   record.StepEntry,
			FailOn: DefaultFailOn,
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Parse.FailOn) == "" {
		c.Parse.FailOn = DefaultFailOn
	}
	if c.Parse.Step == 0 {
		c.Parse.Step = record.StepEntry
	}
	if c.Users.DefaultRole == "" {
		c.Users.DefaultRole = users.DefaultRole
	}
	if c.Users.DefaultPassword == "" {
		return errors.New("users.default_password must not be empty")
	}
	return nil
}
