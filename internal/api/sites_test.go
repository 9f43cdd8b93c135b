package api

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitesAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/all", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"b","site_url":"b.com"},{"id":"a","site_url":"a.com"}]`)
	})

	sites, err := NewSites(c).All(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "b", sites[0].ID)
	assert.Equal(t, "a", sites[1].ID)
}

func TestSitesAllEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	sites, err := NewSites(c).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestSitesCreateLowercases(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sites/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"site_url":"https://example.com/path "}`, string(body))
		_, _ = io.WriteString(w, `{"site_id":"s1","message":"ok"}`)
	})

	resp, err := NewSites(c).Create(context.Background(), "HTTPS://Example.COM/Path ")
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SiteID)
}

func TestSitesDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/sites/s1", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":false,"message":"nope"}`)
	})

	resp, err := NewSites(c).Delete(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "nope", resp.Message)
}

func TestSitesGetNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := NewSites(c).Get(context.Background(), "missing")
	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found\n", apiErr.Message)
}

func TestSitesAnalyticsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/s 1/analytics", r.URL.Path)
		assert.Equal(t, "2024-01-02", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("to"))
		_, _ = io.WriteString(w, `{"page_views":10,"unique_visitors":4,"visitor_graph":[{"day":"2024-01-02","unique_visitors":4}]}`)
	})

	from := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.Local)
	to := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.Local)
	got, err := NewSites(c).Analytics(context.Background(), "s 1", from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.PageViews)
	assert.Equal(t, []float64{4}, got.VisitorSeries())
}
