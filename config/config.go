// Package config loads bus-ticket-cli settings. Values are layered: built-in
// defaults, then a TOML file, then environment variables (a .env file in the
// working directory is read first). Command-line flags are applied by the
// caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	EnvConfig    = "BUSTICKET_CONFIG"
	EnvCatalog   = "BUSTICKET_CATALOG"
	EnvLogLevel  = "BUSTICKET_LOG_LEVEL"
	EnvLogFile   = "BUSTICKET_LOG_FILE"
	EnvFrom      = "BUSTICKET_FROM"
	EnvTo        = "BUSTICKET_TO"
	EnvNoHistory = "BUSTICKET_NO_HISTORY"
)

type Config struct {
	// Catalog is a YAML catalog file. Empty means the built-in demo data.
	Catalog  string        `toml:"catalog"`
	Currency string        `toml:"currency"`
	Logs     LogsConfig    `toml:"logs"`
	Search   SearchConfig  `toml:"search"`
	History  HistoryConfig `toml:"history"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	// File receives log records. Empty means stderr for plain commands and
	// nowhere for the TUI.
	File string `toml:"file"`
}

// SearchConfig preselects a route when the TUI starts.
type SearchConfig struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Currency: "৳",
		Logs:     LogsConfig{Level: "info"},
		History:  HistoryConfig{Enabled: true},
	}
}

// Load builds the configuration. path may be empty, in which case
// BUSTICKET_CONFIG is consulted; if neither names a file only defaults and
// the environment are used. A file that is named explicitly must exist.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv(EnvCatalog); ok {
		c.Catalog = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.Logs.Level = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logs.File = v
	}
	if v, ok := lookupEnv(EnvFrom); ok {
		c.Search.From = v
	}
	if v, ok := lookupEnv(EnvTo); ok {
		c.Search.To = v
	}
	if v, ok := lookupEnv(EnvNoHistory); ok {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoHistory, err)
		}
		c.History.Enabled = !disabled
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Logs.Level); err != nil {
		return err
	}
	if strings.TrimSpace(c.Currency) == "" {
		return errors.New("currency must not be empty")
	}
	return nil
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
