package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	t.Setenv(key, "test_value")

	assert.Equal(t, "test_value", getEnvString(key, "default"))
	assert.Equal(t, "default", getEnvString("NON_EXISTENT", "default"))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)

			assert.Equal(t, tt.want, getEnvDuration(key, tt.defaultVal))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		name       string
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"True", "true", false, true},
		{"Zero", "0", true, false},
		{"Invalid", "maybe", true, true},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)

			assert.Equal(t, tt.want, getEnvBool(key, tt.defaultVal))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	require.NoError(t, ensureDir(path))
	assert.DirExists(t, path)
	assert.NoError(t, ensureDir(""))
}

func TestGetDefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	want := filepath.Join(home, ".config", "clutter-tui", "session.db")
	assert.Equal(t, want, getDefaultPath(databaseName))
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	require.NotEmpty(t, paths)

	cwd, _ := os.Getwd()
	assert.Equal(t, filepath.Join(cwd, ".env"), paths[0], "current directory .env comes first")
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://studio.phy0.in", false},
		{"http://localhost:8080", false},
		{"ftp://example.com", true},
		{"studio.phy0.in", true},
		{"https://", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := validateURL(EnvAPIURL, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// isolate points HOME and the working directory at an empty temp dir so no
// real .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)
	for _, key := range []string{EnvAPIURL, EnvDatabasePath, EnvLogPath, EnvTrackerURL, EnvRequestTimeout, EnvNotify, EnvLogLevel} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultAPIURL, cfg.APIURL)
	assert.Equal(t, defaultTrackerURL, cfg.TrackerURL)
	assert.Zero(t, cfg.RequestTimeout)
	assert.True(t, cfg.Notify, "Notify defaults to true")
	assert.Equal(t, "info", cfg.LogLevel)
	wantDB := filepath.Join(tmpDir, ".config", "clutter-tui", "session.db")
	assert.Equal(t, wantDB, cfg.DatabasePath)
	assert.DirExists(t, filepath.Dir(wantDB))
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv(EnvAPIURL, "http://localhost:8080/")
	t.Setenv(EnvDatabasePath, filepath.Join(tmpDir, "db", "s.db"))
	t.Setenv(EnvRequestTimeout, "15s")
	t.Setenv(EnvNotify, "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIURL, "trailing slash trimmed")
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Notify)
}

func TestLoad_InvalidAPIURL(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIURL, "ftp://example.com")

	_, err := Load()
	assert.Error(t, err, "non-http API URL")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	isolate(t)
	t.Setenv(EnvRequestTimeout, "-5s")

	_, err := Load()
	assert.Error(t, err, "negative timeout")
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	content := "CLUTTER_API_URL=http://127.0.0.1:9000\nCLUTTER_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(content), 0o600))
	// godotenv.Load does not override variables that are already set, even
	// when empty, so drop them from the environment entirely.
	os.Unsetenv(EnvAPIURL)
	os.Unsetenv(EnvLogLevel)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}
