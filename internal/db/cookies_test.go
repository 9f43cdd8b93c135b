package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCookie_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	expires := time.Date(2030, time.January, 1, 12, 0, 0, 500, time.UTC)
	in := &Cookie{
		Name:     "session",
		Value:    "abc",
		Domain:   "studio.phy0.in",
		Path:     "/",
		Expires:  expires,
		Secure:   true,
		HTTPOnly: true,
		HostOnly: true,
	}
	require.NoError(t, db.UpsertCookie(ctx, in))

	cookies, err := db.Cookies(ctx)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].Expires.Equal(expires))
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HTTPOnly)
	assert.True(t, cookies[0].HostOnly)
}

func TestUpsertCookie_Replaces(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "s", Value: "1", Domain: "a.com", Path: "/"}))
	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "s", Value: "2", Domain: "a.com", Path: "/"}))
	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "s", Value: "3", Domain: "a.com", Path: "/api"}))

	cookies, err := db.Cookies(ctx)
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	// Longest path first.
	assert.Equal(t, "/api", cookies[0].Path)
	assert.Equal(t, "2", cookies[1].Value)
	assert.False(t, cookies[1].Persistent())
}

func TestDeleteAndClearCookies(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "a", Value: "1", Domain: "x.com", Path: "/"}))
	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "b", Value: "2", Domain: "x.com", Path: "/"}))

	require.NoError(t, db.DeleteCookie(ctx, "a", "x.com", "/"))
	cookies, err := db.Cookies(ctx)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "b", cookies[0].Name)

	require.NoError(t, db.ClearCookies(ctx))
	cookies, err = db.Cookies(ctx)
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestPurgeExpiredCookies(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "old", Value: "1", Domain: "x.com", Path: "/", Expires: now.Add(-time.Second)}))
	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "new", Value: "2", Domain: "x.com", Path: "/", Expires: now.Add(time.Hour)}))
	require.NoError(t, db.UpsertCookie(ctx, &Cookie{Name: "sess", Value: "3", Domain: "x.com", Path: "/"}))

	n, err := db.PurgeExpiredCookies(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cookies, err := db.Cookies(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"new", "sess"}, names)
}

func TestCookieExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		c    Cookie
		want bool
	}{
		{"session cookie", Cookie{}, false},
		{"future", Cookie{Expires: now.Add(time.Minute)}, false},
		{"past", Cookie{Expires: now.Add(-time.Minute)}, true},
		{"exactly now", Cookie{Expires: now}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Expired(now))
		})
	}
}
