package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, opts...)
}

func TestFetchDecodesJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/things", r.URL.Path)
		_, _ = io.WriteString(w, `{"name":"a","count":3}`)
	})

	got, err := Fetch[payload](context.Background(), c, "/things", RequestOptions{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, payload{Name: "a", Count: 3}, *got)
}

func TestFetchEmptyBodyReturnsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	got, err := Fetch[payload](context.Background(), c, "/empty", RequestOptions{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFetchHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		assert.Equal(t, "clutter-test", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, `{}`)
	}, WithUserAgent("clutter-test"))

	_, err := Fetch[payload](context.Background(), c, "/h", RequestOptions{
		Headers: map[string]string{"Content-Type": "text/plain", "X-Extra": "yes"},
	})
	require.NoError(t, err)
}

func TestFetchDefaultContentType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"x","count":1}`, string(body))
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := Fetch[payload](context.Background(), c, "/p", RequestOptions{
		Method: http.MethodPost,
		Body:   payload{Name: "x", Count: 1},
	})
	require.NoError(t, err)
}

func TestFetchForwardsCookies(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	var seen string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		default:
			if ck, err := r.Cookie("session"); err == nil {
				seen = ck.Value
			}
		}
		_, _ = io.WriteString(w, `{}`)
	}, WithCookieJar(jar))

	_, err = Fetch[payload](context.Background(), c, "/login", RequestOptions{Method: http.MethodPost})
	require.NoError(t, err)
	_, err = Fetch[payload](context.Background(), c, "/me", RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "abc", seen)
}

func TestFetchNon2xx(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		unauth  bool
	}{
		{name: "body text verbatim", status: http.StatusBadRequest, body: "Site already exists", wantMsg: "Site already exists"},
		{name: "empty body", status: http.StatusInternalServerError, body: "", wantMsg: "API error: 500"},
		{name: "401", status: http.StatusUnauthorized, body: "", wantMsg: "API error: 401", unauth: true},
		{name: "unauthorized marker", status: http.StatusForbidden, body: "Unauthorized access", wantMsg: "Unauthorized access", unauth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := Fetch[payload](context.Background(), c, "/x", RequestOptions{})
			require.Error(t, err)
			assert.Nil(t, got)

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindAPI, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.unauth, IsUnauthorized(err))
		})
	}
}

func TestFetchInvalidJSONIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	})

	_, err := Fetch[payload](context.Background(), c, "/bad", RequestOptions{})
	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Zero(t, apiErr.Status)
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := Fetch[payload](context.Background(), c, "/x", RequestOptions{})
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Zero(t, apiErr.Status)
	assert.NotNil(t, apiErr.Unwrap())
	assert.False(t, IsUnauthorized(err))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClient("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "fallback", Message(nil, "fallback"))
	assert.Equal(t, "boom", Message(&Error{Kind: KindAPI, Message: "boom"}, "fallback"))
	assert.Equal(t, "fallback", Message(&Error{Kind: KindAPI, Message: "  "}, "fallback"))
	assert.Equal(t, "fallback", Message(&Error{Kind: KindTransport, Message: "dial tcp: refused"}, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "unknown", ErrorKind(9).String())
}
