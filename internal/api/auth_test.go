package api

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints(t *testing.T) {
	type call struct {
		method string
		path   string
		body   string
	}
	var calls []call

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, string(body)})
		if r.URL.Path == "/users/me" {
			_, _ = io.WriteString(w, `{"id":"u1","username":"ann","email":"a@b.co","email_verified":true}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})
	auth := NewAuth(c)
	ctx := context.Background()

	_, err := auth.Login(ctx, "a@b.co", "secret")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "ann", "a@b.co", "secret")
	require.NoError(t, err)
	_, err = auth.Verify(ctx, "123456")
	require.NoError(t, err)
	msg, err := auth.GenerateCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Message)
	_, err = auth.Logout(ctx)
	require.NoError(t, err)
	user, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)

	require.Len(t, calls, 6)
	assert.Equal(t, call{http.MethodPost, "/auth/login", `{"email":"a@b.co","password":"secret"}`}, calls[0])
	assert.Equal(t, call{http.MethodPost, "/auth/register", `{"username":"ann","email":"a@b.co","password":"secret"}`}, calls[1])
	assert.Equal(t, call{http.MethodPost, "/auth/verify", `{"code":"123456"}`}, calls[2])
	assert.Equal(t, http.MethodPost, calls[3].method)
	assert.Equal(t, "/auth/generate-code", calls[3].path)
	assert.Equal(t, "/auth/logout", calls[4].path)
	assert.Equal(t, call{http.MethodGet, "/users/me", ""}, calls[5])
}

func TestAuthLoginUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "invalid credentials")
	})

	_, err := NewAuth(c).Login(context.Background(), "a@b.co", "bad")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "invalid credentials", err.Error())
}
