// Package config contains everything related to configuration
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// APIURL is the backend origin every request is sent to.
	APIURL       string
	DatabasePath string
	LogPath      string
	// TrackerURL is the script source embedded in tracking snippets.
	TrackerURL string
	// RequestTimeout bounds each backend call. Zero leaves calls unbounded.
	RequestTimeout time.Duration
	Notify         bool
	LogLevel       string
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// The first .env found wins; real environment variables override it.
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIURL:         strings.TrimRight(getEnvString(EnvAPIURL, defaultAPIURL), "/"),
		DatabasePath:   getEnvString(EnvDatabasePath, getDefaultPath(databaseName)),
		LogPath:        getEnvString(EnvLogPath, getDefaultPath(logFileName)),
		TrackerURL:     getEnvString(EnvTrackerURL, defaultTrackerURL),
		RequestTimeout: getEnvDuration(EnvRequestTimeout, defaultRequestTimeout),
		Notify:         getEnvBool(EnvNotify, true),
		LogLevel:       getEnvString(EnvLogLevel, defaultLogLevel),
	}

	if err := validateURL(EnvAPIURL, cfg.APIURL); err != nil {
		return nil, err
	}
	if err := validateURL(EnvTrackerURL, cfg.TrackerURL); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("%s must not be negative", EnvRequestTimeout)
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateURL checks that raw is an absolute http or https URL.
func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, raw)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, envFileName))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, configDirParent, appDirName, envFileName),
			filepath.Join(home, legacyDirName, envFileName),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, envFileName))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, envFileName))
	}

	return paths
}

// getDefaultPath returns name inside the per-user config directory.
func getDefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, configDirParent, appDirName, name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
