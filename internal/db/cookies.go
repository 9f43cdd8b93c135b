package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
)

// Cookie is a persisted HTTP cookie. A zero Expires marks a session cookie.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	HostOnly bool
}

// Persistent reports whether the cookie carries an expiry.
func (c *Cookie) Persistent() bool {
	return !c.Expires.IsZero()
}

// Expired reports whether the cookie has expired at now.
func (c *Cookie) Expired(now time.Time) bool {
	return c.Persistent() && !c.Expires.After(now)
}

// UpsertCookie inserts or replaces a cookie keyed by name, domain and path.
func (db *DB) UpsertCookie(ctx context.Context, c *Cookie) error {
	query := `
		INSERT INTO cookies (` + sqlCookieColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, domain, path) DO UPDATE SET
			value = excluded.value,
			expires = excluded.expires,
			secure = excluded.secure,
			http_only = excluded.http_only,
			host_only = excluded.host_only
	`

	_, err := db.ExecContext(ctx, query,
		c.Name,
		c.Value,
		c.Domain,
		c.Path,
		nullTime(c.Expires),
		c.Secure,
		c.HTTPOnly,
		c.HostOnly,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cookie %s: %w", c.Name, err)
	}
	return nil
}

// DeleteCookie removes a single cookie.
func (db *DB) DeleteCookie(ctx context.Context, name, domain, path string) error {
	_, err := db.ExecContext(ctx,
		"DELETE FROM cookies WHERE name = ? AND domain = ? AND path = ?",
		name, domain, path)
	if err != nil {
		return fmt.Errorf("failed to delete cookie %s: %w", name, err)
	}
	return nil
}

// Cookies returns every stored cookie ordered by domain, then longest path.
func (db *DB) Cookies(ctx context.Context) ([]Cookie, error) {
	query := `SELECT ` + sqlCookieColumns + ` FROM cookies ORDER BY domain, length(path) DESC, name`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cookies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var cookies []Cookie
	for rows.Next() {
		var (
			c       Cookie
			expires sql.NullString
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expires, &c.Secure, &c.HTTPOnly, &c.HostOnly); err != nil {
			return nil, fmt.Errorf("failed to scan cookie: %w", err)
		}
		if expires.Valid && expires.String != "" {
			t, err := time.Parse(timeLayout, expires.String)
			if err != nil {
				logger.Warn("skipping cookie with bad expiry", "name", c.Name, "expires", expires.String)
				continue
			}
			c.Expires = t
		}
		cookies = append(cookies, c)
	}

	return cookies, rows.Err()
}

// ClearCookies removes every stored cookie.
func (db *DB) ClearCookies(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM cookies"); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

// PurgeExpiredCookies deletes persistent cookies that expired before now and
// returns how many were removed.
func (db *DB) PurgeExpiredCookies(ctx context.Context, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx,
		"DELETE FROM cookies WHERE expires IS NOT NULL AND expires <= ?",
		now.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired cookies: %w", err)
	}
	return result.RowsAffected()
}

// nullTime returns a sql.NullString holding t in UTC, or NULL for zero t.
func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
