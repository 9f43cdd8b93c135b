package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionRecord is the locally known sign-in state. Generation increases on
// every sign-in and sign-out so other processes can notice the change.
type SessionRecord struct {
	Handle     string
	Email      string
	StartedAt  time.Time
	Generation int64
}

// Active reports whether the record describes a signed-in session.
func (r *SessionRecord) Active() bool {
	return r != nil && r.Handle != ""
}

// Session returns the current session record. A signed-out store yields a
// record with an empty Handle.
func (db *DB) Session(ctx context.Context) (*SessionRecord, error) {
	var (
		rec       SessionRecord
		handle    sql.NullString
		email     sql.NullString
		startedAt sql.NullString
	)

	err := db.QueryRowContext(ctx,
		"SELECT handle, email, started_at, generation FROM session WHERE id = 1",
	).Scan(&handle, &email, &startedAt, &rec.Generation)
	if err == sql.ErrNoRows {
		return &rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	rec.Handle = handle.String
	rec.Email = email.String
	if startedAt.Valid && startedAt.String != "" {
		if t, err := time.Parse(timeLayout, startedAt.String); err == nil {
			rec.StartedAt = t
		}
	}

	return &rec, nil
}

// SaveSession records a new sign-in and returns the new generation.
func (db *DB) SaveSession(ctx context.Context, handle, email string, startedAt time.Time) (int64, error) {
	var generation int64
	err := db.QueryRowContext(ctx, `
		UPDATE session
		SET handle = ?, email = ?, started_at = ?, generation = generation + 1
		WHERE id = 1
		RETURNING generation
	`, nullString(handle), nullString(email), nullTime(startedAt)).Scan(&generation)
	if err != nil {
		return 0, fmt.Errorf("failed to save session: %w", err)
	}
	return generation, nil
}

// ClearSession records a sign-out and returns the new generation.
func (db *DB) ClearSession(ctx context.Context) (int64, error) {
	var generation int64
	err := db.QueryRowContext(ctx, `
		UPDATE session
		SET handle = NULL, email = NULL, started_at = NULL, generation = generation + 1
		WHERE id = 1
		RETURNING generation
	`).Scan(&generation)
	if err != nil {
		return 0, fmt.Errorf("failed to clear session: %w", err)
	}
	return generation, nil
}

// Generation returns the current session generation.
func (db *DB) Generation(ctx context.Context) (int64, error) {
	var generation int64
	if err := db.QueryRowContext(ctx, "SELECT generation FROM session WHERE id = 1").Scan(&generation); err != nil {
		return 0, fmt.Errorf("failed to get session generation: %w", err)
	}
	return generation, nil
}
