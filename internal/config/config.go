// Package config provides configuration loading for the notes utility.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete notes configuration
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Server  ServerConfig  `yaml:"server"`
	Display DisplayConfig `yaml:"display"`
}

// StoreConfig configures the persistence boundary
type StoreConfig struct {
	// Path is the SQLite database file holding the persisted collection
	Path string `yaml:"path"`
}

// ServerConfig configures the local HTTP API
type ServerConfig struct {
	// Addr is the listen address for the serve subcommand
	Addr string `yaml:"addr"`
}

// DisplayConfig configures default list views
type DisplayConfig struct {
	// Sort is the default ordering: date, alphabetical or status
	Sort string `yaml:"sort"`
	// Filter is the default status filter: all, open or done
	Filter string `yaml:"filter"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Store:   StoreConfig{Path: filepath.Join(home, ".notes", "notes.db")},
		Server:  ServerConfig{Addr: ":8080"},
		Display: DisplayConfig{Sort: "date", Filter: "all"},
	}
}

// LoadFromFile reads a Config from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge overlays non-empty fields from other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Store.Path != "" {
		c.Store.Path = other.Store.Path
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Display.Sort != "" {
		c.Display.Sort = other.Display.Sort
	}
	if other.Display.Filter != "" {
		c.Display.Filter = other.Display.Filter
	}
}

// Validate checks that the config is usable
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	return nil
}
