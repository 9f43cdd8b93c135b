package config

import "time"

// Environment variable names.
const (
	EnvAPIURL         = "CLUTTER_API_URL"
	EnvDatabasePath   = "CLUTTER_DB_PATH"
	EnvLogPath        = "CLUTTER_LOG_PATH"
	EnvTrackerURL     = "CLUTTER_TRACKER_URL"
	EnvRequestTimeout = "CLUTTER_REQUEST_TIMEOUT"
	EnvNotify         = "CLUTTER_NOTIFY"
	EnvLogLevel       = "CLUTTER_LOG_LEVEL"
)

// Default values
const (
	defaultAPIURL         = "https://studio.phy0.in"
	defaultTrackerURL     = "https://raw.githubusercontent.com/ThEditor/clutter-ink/refs/heads/main/script.js"
	defaultRequestTimeout = time.Duration(0)
	defaultLogLevel       = "info"

	appDirName      = "clutter-tui"
	databaseName    = "session.db"
	logFileName     = "clutter.log"
	legacyDirName   = ".clutter"
	envFileName     = ".env"
	configDirParent = ".config"
)
