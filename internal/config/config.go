package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all tend configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Import   ImportConfig   `toml:"import"`
	Notify   NotifyConfig   `toml:"notify"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ImportConfig struct {
	// Inbox is a directory watched during `tend serve`; CSV files
	// dropped there are imported automatically. Empty disables it.
	Inbox string `toml:"inbox"`
}

type NotifyConfig struct {
	// OverdueThresholdDays controls how overdue a relationship must be
	// before the digest flags it.
	OverdueThresholdDays int `toml:"overdue_threshold_days"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37707,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Notify: NotifyConfig{
			OverdueThresholdDays: 1,
		},
	}
}

// DefaultPath returns ~/.tend/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".tend", "config.toml"), nil
}

// Load reads the config file at path, falling back to defaults for a
// missing file. Values in the file overlay the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
