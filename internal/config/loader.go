package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/notes"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"

	// EnvStorePath overrides the database path when set
	EnvStorePath = "NOTES_DB"
	// EnvServerAddr overrides the serve listen address when set
	EnvServerAddr = "NOTES_ADDR"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/notes/config.yaml)
// 3. Environment variables (NOTES_DB, NOTES_ADDR)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config",
			slog.String("path", userConfigPath),
			slog.String("error", err.Error()))
	}

	if path := os.Getenv(EnvStorePath); path != "" {
		l.logger.Debug("Store path from environment", slog.String("path", path))
		config.Store.Path = path
	}
	if addr := os.Getenv(EnvServerAddr); addr != "" {
		config.Server.Addr = addr
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
