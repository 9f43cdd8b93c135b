// Package api provides a typed client for the Clutter analytics backend.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
)

// DefaultBaseURL is the production backend origin.
const DefaultBaseURL = "https://studio.phy0.in"

const (
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
	defaultUserAgent  = "clutter-tui"
)

// Client performs JSON requests against a fixed backend origin. Session state
// lives in the cookie jar of the underlying http.Client; the client never
// reads or writes credentials itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Apply it before
// WithCookieJar or WithTimeout, which modify the client in place.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCookieJar sets the jar used to forward session cookies.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.httpClient.Jar = jar
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for the given backend origin.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions describes a single backend call.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
}

// Fetch performs a request and decodes the JSON response into T.
//
// A successful response with an empty body yields (nil, nil). Non-2xx
// responses become an *Error of KindAPI; network and decoding failures become
// an *Error of KindTransport.
func Fetch[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (*T, error) {
	body, err := c.do(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to parse response: %v", err),
			Err:     err,
		}
	}
	return &out, nil
}

// do sends the request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to encode request: %v", err), Err: err}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerUserAgent, c.userAgent)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}

	logger.Debug("api call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := string(body)
		if message == "" {
			message = fmt.Sprintf("API error: %d", resp.StatusCode)
		}
		return nil, &Error{Kind: KindAPI, Status: resp.StatusCode, Message: message}
	}

	return body, nil
}
