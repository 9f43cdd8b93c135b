package db

import (
	"context"
	"fmt"
)

// migrations are applied in order; the index plus one is the schema version
// recorded in PRAGMA user_version.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS cookies (
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		domain TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '/',
		expires TEXT,
		secure INTEGER DEFAULT 0,
		http_only INTEGER DEFAULT 0,
		host_only INTEGER DEFAULT 1,
		PRIMARY KEY (name, domain, path)
	);
	CREATE INDEX IF NOT EXISTS idx_cookies_domain ON cookies(domain);
	`,
	`
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		handle TEXT,
		email TEXT,
		started_at TEXT,
		generation INTEGER NOT NULL DEFAULT 0
	);
	INSERT OR IGNORE INTO session (id, generation) VALUES (1, 0);
	`,
}

// SchemaVersion returns the applied schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// migrate applies every migration newer than the recorded schema version.
func (db *DB) migrate() error {
	current, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		if _, err := db.ExecContext(context.Background(), migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := db.ExecContext(context.Background(), fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
	}

	return nil
}
