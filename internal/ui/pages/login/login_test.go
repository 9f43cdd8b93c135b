package login

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/pagetest"
)

type fakeAuth struct {
	email, password string
	calls           int
	resp            *models.AuthResponse
	err             error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.calls++
	f.email, f.password = email, password
	return f.resp, f.err
}

func newModel(f *fakeAuth) *Model {
	m := New(f)
	m.SetSize(100, 40)
	m.Enter(app.NavigateParams{})
	return m
}

func fill(m *Model, email, password string) {
	pagetest.Type(m, email)
	m.Update(pagetest.Key("tab"))
	pagetest.Type(m, password)
}

// submit presses enter on the last field and feeds the result back.
func submit(m *Model) []tea.Msg {
	_, cmd := m.Update(pagetest.Key("enter"))
	var out []tea.Msg
	for _, msg := range pagetest.Run(cmd) {
		out = append(out, msg)
		if res, ok := msg.(loginResultMsg); ok {
			_, next := m.Update(res)
			out = append(out, pagetest.Run(next)...)
		}
	}
	return out
}

func TestNew(t *testing.T) {
	m := New(nil)
	require.NotNil(t, m)
	assert.Nil(t, m.Init())
	assert.True(t, m.CapturesInput())
	assert.Len(t, m.FullHelp(), 2)
}

func TestView(t *testing.T) {
	m := newModel(&fakeAuth{})
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Welcome back")
	assert.Contains(t, view, "Email")
	assert.Contains(t, view, "Password")
}

func TestEnterOnFirstFieldMovesFocus(t *testing.T) {
	f := &fakeAuth{}
	m := newModel(f)

	_, cmd := m.Update(pagetest.Key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, fieldPassword, m.form.Focused())
	assert.Zero(t, f.calls)
}

func TestSubmit_Success(t *testing.T) {
	user := &models.User{ID: "u1", Username: "ada"}
	f := &fakeAuth{resp: &models.AuthResponse{Message: "Login successful", User: user}}
	m := newModel(f)
	fill(m, "ada@example.com", "secret1")

	msgs := submit(m)

	assert.Equal(t, "ada@example.com", f.email)
	assert.Equal(t, "secret1", f.password)

	nav, ok := pagetest.Navigation(msgs)
	require.True(t, ok)
	assert.Equal(t, app.PageDashboard, nav.Page)

	loaded, ok := pagetest.Find[app.UserLoadedMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, user, loaded.User)

	toasts := pagetest.Notifications(msgs)
	require.Len(t, toasts, 1)
	assert.Equal(t, app.NotificationSuccess, toasts[0].Type)
	assert.Equal(t, "Login successful", toasts[0].Message)
}

func TestSubmit_InvalidEmailRejectedLocally(t *testing.T) {
	f := &fakeAuth{}
	m := newModel(f)
	fill(m, "not-an-email", "secret1")

	msgs := submit(m)

	assert.Zero(t, f.calls)
	toasts := pagetest.Notifications(msgs)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Invalid email address", toasts[0].Message)
}

func TestSubmit_Failure(t *testing.T) {
	f := &fakeAuth{err: &api.Error{Kind: api.KindAPI, Status: 401, Message: "invalid credentials"}}
	m := newModel(f)
	fill(m, "ada@example.com", "wrong")

	msgs := submit(m)

	_, navigated := pagetest.Navigation(msgs)
	assert.False(t, navigated)
	toasts := pagetest.Notifications(msgs)
	require.Len(t, toasts, 1)
	assert.Equal(t, app.NotificationError, toasts[0].Type)
	assert.Equal(t, "Login Failed", toasts[0].Title)
	assert.Equal(t, "invalid credentials", toasts[0].Message)
	assert.False(t, m.submitting)
}

func TestSubmit_TransportFailure(t *testing.T) {
	m := newModel(&fakeAuth{err: errors.New("connection refused")})
	fill(m, "ada@example.com", "secret1")

	toasts := pagetest.Notifications(submit(m))
	require.Len(t, toasts, 1)
	assert.Equal(t, "Invalid email or password.", toasts[0].Message)
}

func TestSignupShortcut(t *testing.T) {
	m := newModel(&fakeAuth{})
	_, cmd := m.Update(pagetest.Key("ctrl+n"))
	nav, ok := pagetest.Navigation(pagetest.Run(cmd))
	require.True(t, ok)
	assert.Equal(t, app.PageSignup, nav.Page)
}

func TestEnterClearsForm(t *testing.T) {
	m := newModel(&fakeAuth{})
	fill(m, "ada@example.com", "secret1")

	m.Enter(app.NavigateParams{})
	assert.Empty(t, m.form.Value(fieldEmail))
	assert.Empty(t, m.form.Value(fieldPassword))
	assert.Equal(t, fieldEmail, m.form.Focused())
}
