package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	rec, err := db.Session(context.Background())
	require.NoError(t, err)
	assert.False(t, rec.Active())
	assert.Zero(t, rec.Generation)
}

func TestSession_SaveAndClear(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()
	started := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

	gen, err := db.SaveSession(ctx, "handle-1", "a@b.co", started)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	rec, err := db.Session(ctx)
	require.NoError(t, err)
	assert.True(t, rec.Active())
	assert.Equal(t, "handle-1", rec.Handle)
	assert.Equal(t, "a@b.co", rec.Email)
	assert.True(t, rec.StartedAt.Equal(started))

	gen, err = db.ClearSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	rec, err = db.Session(ctx)
	require.NoError(t, err)
	assert.False(t, rec.Active())
	assert.Empty(t, rec.Email)
	assert.True(t, rec.StartedAt.IsZero())

	current, err := db.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)
}

func TestSessionRecord_ActiveNil(t *testing.T) {
	var rec *SessionRecord
	assert.False(t, rec.Active())
}
