// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// SharedDir is the directory backing the shared-file tier. Every
	// cooperating process (daemon, widgets, dashboard) must be able to
	// reach it.
	SharedDir string
	// RegisterPath is the SQLite file backing the key-value tier.
	RegisterPath string
	// HistoryPath is the SQLite file holding the daemon's usage history.
	HistoryPath string
	// APIBaseURL points the poller at the usage endpoint.
	APIBaseURL string
	// PollInterval is how often the daemon fetches remote usage.
	PollInterval time.Duration
	// Debug enables debug-level logging.
	Debug bool
}

// Default values
const (
	defaultPollInterval = 5 * time.Minute
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		SharedDir:    getEnvString("CUT_SHARED_DIR", defaultSharedDir()),
		RegisterPath: getEnvString("CUT_REGISTER_PATH", defaultConfigPath("register.db")),
		HistoryPath:  getEnvString("CUT_HISTORY_PATH", defaultConfigPath("history.db")),
		APIBaseURL:   getEnvString("CUT_API_BASE_URL", ""),
		PollInterval: getEnvDuration("CUT_POLL_INTERVAL", defaultPollInterval),
		Debug:        getEnvBool("CUT_DEBUG", false),
	}

	if err := ensureDir(cfg.SharedDir); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Dir(cfg.RegisterPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "claude-usage-tracker", ".env"),
			filepath.Join(home, ".claude-usage-tracker", ".env"),
		)
	}

	return paths
}

// defaultSharedDir returns the shared-container directory every
// cooperating process can reach.
func defaultSharedDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shared"
	}
	return filepath.Join(home, ".local", "share", "claude-usage-tracker", "shared")
}

// defaultConfigPath returns a path under the per-user config directory.
func defaultConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", "claude-usage-tracker", name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
