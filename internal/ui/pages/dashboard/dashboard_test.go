package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/pagetest"
)

type analyticsCall struct {
	id       string
	from, to time.Time
}

type fakeBackend struct {
	user    *models.User
	userErr error

	sites      []models.Site
	sitesErr   error
	sitesCalls int

	analytics    map[string]*models.SiteAnalytics
	analyticsErr error
	calls        []analyticsCall
}

func (f *fakeBackend) CurrentUser(context.Context) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeBackend) All(context.Context) ([]models.Site, error) {
	f.sitesCalls++
	return f.sites, f.sitesErr
}

func (f *fakeBackend) Analytics(_ context.Context, id string, from, to time.Time) (*models.SiteAnalytics, error) {
	f.calls = append(f.calls, analyticsCall{id: id, from: from, to: to})
	if f.analyticsErr != nil {
		return nil, f.analyticsErr
	}
	return f.analytics[id], nil
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		user: &models.User{ID: "u1", Username: "ada", Email: "ada@example.com", EmailVerified: true},
		sites: []models.Site{
			{ID: "a", SiteURL: "a.com"},
			{ID: "b", SiteURL: "b.com"},
			{ID: "c", SiteURL: "c.com"},
		},
		analytics: map[string]*models.SiteAnalytics{
			"a": snapshot(10, 5),
			"b": snapshot(1234, 321),
			"c": snapshot(777, 99),
		},
	}
}

func snapshot(views, visitors int64) *models.SiteAnalytics {
	return &models.SiteAnalytics{
		PageViews:      views,
		UniqueVisitors: visitors,
		TopPages:       []models.PageStat{{Page: "/", Count: views}},
		TopReferrers:   []models.ReferrerStat{{Referrer: "news.ycombinator.com", Count: 3}, {Referrer: "", Count: 1}},
		DeviceStats:    []models.DeviceStat{{DeviceType: "desktop", Count: 3}, {DeviceType: "mobile", Count: 1}},
		VisitorGraph: []models.VisitorPoint{
			{Day: "2024-05-01", UniqueVisitors: 1},
			{Day: "2024-05-02", UniqueVisitors: visitors},
		},
	}
}

func newModel(b *fakeBackend, opts ...Option) *Model {
	m := New(b, b, opts...)
	m.SetSize(120, 80)
	return m
}

// drive runs cmd and feeds the page's own fetch results back into it until
// nothing is left. Every message seen is returned.
func drive(m *Model, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := pagetest.Run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		out = append(out, msg)
		switch msg.(type) {
		case userLoadedMsg, sitesLoadedMsg, analyticsLoadedMsg:
			_, next := m.Update(msg)
			queue = append(queue, pagetest.Run(next)...)
		}
	}
	return out
}

func TestNew(t *testing.T) {
	m := New(nil, nil)
	require.NotNil(t, m)
	assert.Nil(t, m.Init())
	assert.False(t, m.CapturesInput())
	assert.Len(t, m.FullHelp(), 3)
	assert.NotEmpty(t, m.ShortHelp())
}

func TestEnter_SelectsRequestedSite(t *testing.T) {
	b := newBackend()
	m := newModel(b)

	msgs := drive(m, m.Enter(app.NavigateParams{SiteID: "b"}))

	require.Len(t, b.calls, 1)
	assert.Equal(t, "b", b.calls[0].id)

	userMsg, ok := pagetest.Find[app.UserLoadedMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "ada", userMsg.User.Username)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Analytics: b.com")
	assert.Contains(t, view, "Unique Visitors")
	assert.Contains(t, view, "Total Pageviews")
	assert.Contains(t, view, "1,234")
	assert.Contains(t, view, "site 2 of 3")
	assert.Contains(t, view, "Top Sources")
	assert.Contains(t, view, "Direct / None")
	assert.Contains(t, view, "Devices")
}

func TestEnter_FallsBackToFirstSite(t *testing.T) {
	b := newBackend()
	m := newModel(b)

	drive(m, m.Enter(app.NavigateParams{SiteID: "missing"}))

	require.Len(t, b.calls, 1)
	assert.Equal(t, "a", b.calls[0].id)
	assert.Contains(t, ansi.Strip(m.View()), "Analytics: a.com")
}

func TestEnter_AnalyticsWindow(t *testing.T) {
	now := time.Date(2024, 5, 29, 12, 0, 0, 0, time.UTC)
	b := newBackend()
	m := newModel(b, WithClock(func() time.Time { return now }))

	drive(m, m.Enter(app.NavigateParams{}))

	require.Len(t, b.calls, 1)
	assert.Equal(t, now.Add(-28*24*time.Hour), b.calls[0].from)
	assert.Equal(t, now.Add(24*time.Hour), b.calls[0].to)
}

func TestEnter_NoSites(t *testing.T) {
	b := newBackend()
	b.sites = nil
	m := newModel(b)

	drive(m, m.Enter(app.NavigateParams{}))

	assert.Empty(t, b.calls)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "No sites found")
	assert.Contains(t, view, "You haven't added any sites yet.")

	_, cmd := m.Update(pagetest.Key("a"))
	nav, ok := pagetest.Navigation(pagetest.Run(cmd))
	require.True(t, ok)
	assert.Equal(t, app.PageAddSite, nav.Page)
}

func TestEnter_SignedOutRedirectsToLogin(t *testing.T) {
	b := newBackend()
	b.user = nil
	b.userErr = &api.Error{Kind: api.KindAPI, Status: 401}
	m := newModel(b)

	msgs := drive(m, m.Enter(app.NavigateParams{}))

	nav, ok := pagetest.Navigation(msgs)
	require.True(t, ok)
	assert.Equal(t, app.PageLogin, nav.Page)
	assert.Zero(t, b.sitesCalls)
}

func TestEnter_UnverifiedRedirectsToVerify(t *testing.T) {
	b := newBackend()
	b.user.EmailVerified = false
	m := newModel(b)

	msgs := drive(m, m.Enter(app.NavigateParams{}))

	nav, ok := pagetest.Navigation(msgs)
	require.True(t, ok)
	assert.Equal(t, app.PageVerify, nav.Page)
	assert.Zero(t, b.sitesCalls)
}

func TestEnter_SitesFailure(t *testing.T) {
	b := newBackend()
	b.sitesErr = errors.New("boom")
	m := newModel(b)

	msgs := drive(m, m.Enter(app.NavigateParams{}))

	toasts := pagetest.Notifications(msgs)
	require.Len(t, toasts, 1)
	assert.Equal(t, app.NotificationError, toasts[0].Type)
	assert.Equal(t, "Error", toasts[0].Title)
	assert.Equal(t, "Failed to load site data.", toasts[0].Message)
	assert.Contains(t, ansi.Strip(m.View()), "Sites unavailable")

	b.sitesErr = nil
	_, cmd := m.Update(pagetest.Key("r"))
	drive(m, cmd)
	assert.Contains(t, ansi.Strip(m.View()), "Analytics: a.com")
}

func TestEnter_AnalyticsFailure(t *testing.T) {
	b := newBackend()
	b.analyticsErr = errors.New("boom")
	m := newModel(b)

	msgs := drive(m, m.Enter(app.NavigateParams{}))

	toasts := pagetest.Notifications(msgs)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Failed to load site data.", toasts[0].Message)
	assert.Contains(t, ansi.Strip(m.View()), "Failed to load site data.")
}

func TestEnter_EmptyAnalytics(t *testing.T) {
	b := newBackend()
	b.analytics["a"] = &models.SiteAnalytics{}
	m := newModel(b)

	drive(m, m.Enter(app.NavigateParams{}))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "No analytics data available")
	assert.Contains(t, view, "We haven't collected any data for this site yet.")
	assert.NotContains(t, view, "Unique Visitors")
}

func TestEnter_DropsResultsOfEarlierVisit(t *testing.T) {
	b := newBackend()
	m := newModel(b)

	first := pagetest.Run(m.Enter(app.NavigateParams{}))
	drive(m, m.Enter(app.NavigateParams{SiteID: "c"}))

	stale, ok := pagetest.Find[userLoadedMsg](first)
	require.True(t, ok)
	_, cmd := m.Update(stale)
	assert.Nil(t, cmd)
	assert.Contains(t, ansi.Strip(m.View()), "Analytics: c.com")
}

func TestSiteSwitch_DropsStaleAnalytics(t *testing.T) {
	b := newBackend()
	m := newModel(b)
	drive(m, m.Enter(app.NavigateParams{}))

	_, cmd := m.Update(pagetest.Key("n"))
	toB, ok := pagetest.Find[analyticsLoadedMsg](pagetest.Run(cmd))
	require.True(t, ok)

	_, cmd = m.Update(pagetest.Key("n"))
	toC, ok := pagetest.Find[analyticsLoadedMsg](pagetest.Run(cmd))
	require.True(t, ok)

	m.Update(toC)
	m.Update(toB)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Analytics: c.com")
	assert.Contains(t, view, "777")
	assert.NotContains(t, view, "1,234")
}

func TestSiteSwitch_Wraps(t *testing.T) {
	b := newBackend()
	m := newModel(b)
	drive(m, m.Enter(app.NavigateParams{}))

	_, cmd := m.Update(pagetest.Key("p"))
	drive(m, cmd)

	assert.Equal(t, "c", b.calls[len(b.calls)-1].id)
	assert.Contains(t, ansi.Strip(m.View()), "Analytics: c.com")
}

func TestSiteSwitch_SingleSiteIgnored(t *testing.T) {
	b := newBackend()
	b.sites = b.sites[:1]
	m := newModel(b)
	drive(m, m.Enter(app.NavigateParams{}))

	_, cmd := m.Update(pagetest.Key("n"))
	assert.Nil(t, cmd)
	assert.Len(t, b.calls, 1)
}

func TestRefresh_KeepsSelectedSite(t *testing.T) {
	b := newBackend()
	m := newModel(b)
	drive(m, m.Enter(app.NavigateParams{SiteID: "b"}))

	_, cmd := m.Update(pagetest.Key("r"))
	drive(m, cmd)

	require.Len(t, b.calls, 2)
	assert.Equal(t, "b", b.calls[1].id)
	assert.Equal(t, 2, b.sitesCalls)
}

func TestView_Loading(t *testing.T) {
	m := newModel(newBackend())
	pagetest.Run(m.Enter(app.NavigateParams{}))
	assert.Contains(t, ansi.Strip(m.View()), "Loading dashboard...")

	_, cmd := m.Update(pagetest.Key("r"))
	assert.Nil(t, cmd)
}
