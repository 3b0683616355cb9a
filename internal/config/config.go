// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; passwords live in the connection
// profiles or, when enabled, in the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tablecheck/cli/internal/xdg"
)

// Environment overrides applied on top of the config file.
const (
	EnvConnectTimeout = "TABLECHECK_CONNECT_TIMEOUT"
	EnvQueryTimeout   = "TABLECHECK_QUERY_TIMEOUT"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel       string   `json:"log_level"`
	ConnectTimeout Duration `json:"connect_timeout"`
	// QueryTimeout bounds each catalog or count query; zero means no limit.
	QueryTimeout  Duration `json:"query_timeout"`
	UseKeychain   bool     `json:"use_keychain"`
	SourceProfile string   `json:"source_profile,omitempty"`
	TargetProfile string   `json:"target_profile,omitempty"`
}

// Duration is a time.Duration stored as a string such as "10s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Accept plain seconds as well.
		var secs float64
		if err2 := json.Unmarshal(b, &secs); err2 != nil {
			return fmt.Errorf("duration must be a string like \"10s\": %w", err)
		}
		*d = Duration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Defaults returns the settings used when no config file exists.
func Defaults() Config {
	return Config{
		LogLevel:       "info",
		ConnectTimeout: Duration(10 * time.Second),
	}
}

// path returns the path to the config file.
func path() (string, error) {
	return xdg.ConfigFile("config.json")
}

// Load reads configuration; missing file returns defaults.
// Environment overrides are applied in both cases.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
		if err := c.checkTimeouts(); err != nil {
			return c, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func (c *Config) applyEnv() error {
	for env, dst := range map[string]*Duration{
		EnvConnectTimeout: &c.ConnectTimeout,
		EnvQueryTimeout:   &c.QueryTimeout,
	} {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", env)
		}
		*dst = Duration(d)
	}
	return nil
}

func (c Config) checkTimeouts() error {
	if c.ConnectTimeout < 0 {
		return errors.New("connect_timeout must not be negative")
	}
	if c.QueryTimeout < 0 {
		return errors.New("query_timeout must not be negative")
	}
	return nil
}

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{"log_level", "connect_timeout", "query_timeout", "use_keychain", "source_profile", "target_profile"}

// Set updates one setting by its JSON key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
			c.LogLevel = value
		default:
			return fmt.Errorf("log_level must be one of debug, info, warn, error")
		}
	case "connect_timeout", "query_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
		if key == "connect_timeout" {
			c.ConnectTimeout = Duration(d)
		} else {
			c.QueryTimeout = Duration(d)
		}
	case "use_keychain":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("use_keychain: %w", err)
		}
		c.UseKeychain = b
	case "source_profile":
		c.SourceProfile = value
	case "target_profile":
		c.TargetProfile = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns one setting formatted for display.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "connect_timeout":
		return c.ConnectTimeout.Std().String(), nil
	case "query_timeout":
		return c.QueryTimeout.Std().String(), nil
	case "use_keychain":
		return strconv.FormatBool(c.UseKeychain), nil
	case "source_profile":
		return c.SourceProfile, nil
	case "target_profile":
		return c.TargetProfile, nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}
