package session

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/j-veylop/clutter-dashboard-tui/internal/db"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
)

// CookieStore persists cookies for the jar.
type CookieStore interface {
	UpsertCookie(ctx context.Context, c *db.Cookie) error
	DeleteCookie(ctx context.Context, name, domain, path string) error
	Cookies(ctx context.Context) ([]db.Cookie, error)
	ClearCookies(ctx context.Context) error
	PurgeExpiredCookies(ctx context.Context, now time.Time) (int64, error)
}

// Jar is an http.CookieJar backed by the session database. Every lookup reads
// the store, so cookies written by another process are seen immediately.
//
// Session cookies (no Expires or Max-Age) are persisted too; the terminal
// session outlives any single run.
type Jar struct {
	mu    sync.Mutex
	store CookieStore
	now   func() time.Time
}

var _ http.CookieJar = (*Jar)(nil)

// NewJar creates a jar over store and drops cookies that expired while the
// client was not running.
func NewJar(store CookieStore) *Jar {
	j := &Jar{store: store, now: time.Now}
	if n, err := store.PurgeExpiredCookies(context.Background(), j.now()); err != nil {
		logger.Warn("failed to purge expired cookies", "error", err)
	} else if n > 0 {
		logger.Debug("purged expired cookies", "count", n)
	}
	return j
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	host := canonicalHost(u.Host)
	if host == "" {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	ctx := context.Background()
	now := j.now()

	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}

		domain, hostOnly, ok := cookieDomain(host, c.Domain)
		if !ok {
			logger.Debug("rejecting cookie for foreign domain", "name", c.Name, "domain", c.Domain, "host", host)
			continue
		}

		path := c.Path
		if path == "" || path[0] != '/' {
			path = defaultPath(u.Path)
		}

		var expires time.Time
		switch {
		case c.MaxAge < 0:
			expires = now
		case c.MaxAge > 0:
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		case !c.Expires.IsZero():
			expires = c.Expires
		}

		if !expires.IsZero() && !expires.After(now) {
			if err := j.store.DeleteCookie(ctx, c.Name, domain, path); err != nil {
				logger.Error("failed to delete cookie", "name", c.Name, "error", err)
			}
			continue
		}

		stored := &db.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     path,
			Expires:  expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
			HostOnly: hostOnly,
		}
		if err := j.store.UpsertCookie(ctx, stored); err != nil {
			logger.Error("failed to store cookie", "name", c.Name, "error", err)
		}
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	host := canonicalHost(u.Host)
	if host == "" {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	stored, err := j.store.Cookies(context.Background())
	if err != nil {
		logger.Error("failed to load cookies", "error", err)
		return nil
	}

	now := j.now()
	secure := u.Scheme == "https"
	path := u.Path
	if path == "" {
		path = "/"
	}

	matched := make([]db.Cookie, 0, len(stored))
	for _, c := range stored {
		if c.Expired(now) {
			continue
		}
		if c.Secure && !secure {
			continue
		}
		if c.HostOnly {
			if host != c.Domain {
				continue
			}
		} else if isPublicSuffix(c.Domain) || !domainMatch(host, c.Domain) {
			continue
		}
		if !pathMatch(path, c.Path) {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return len(matched[a].Path) > len(matched[b].Path)
	})

	out := make([]*http.Cookie, len(matched))
	for i, c := range matched {
		out[i] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return out
}

// Clear removes every cookie.
func (j *Jar) Clear(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.store.ClearCookies(ctx)
}

// canonicalHost lower-cases host and strips any port.
func canonicalHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	return strings.Trim(host, "[]")
}

// cookieDomain resolves the Domain attribute against the request host.
func cookieDomain(host, attr string) (domain string, hostOnly bool, ok bool) {
	if attr == "" {
		return host, true, true
	}

	domain = strings.TrimPrefix(strings.ToLower(attr), ".")
	if domain == "" {
		return host, true, true
	}

	// IP addresses only accept an exact Domain attribute.
	if net.ParseIP(host) != nil {
		return host, true, host == domain
	}

	// A public suffix such as "in" or "co.uk" may only name the host itself,
	// and then the cookie is host-only.
	if isPublicSuffix(domain) {
		return host, true, host == domain
	}

	if !domainMatch(host, domain) {
		return "", false, false
	}
	return domain, false, true
}

func isPublicSuffix(domain string) bool {
	ps, _ := publicsuffix.PublicSuffix(domain)
	return ps == domain
}

func domainMatch(host, domain string) bool {
	if host == domain {
		return true
	}
	return net.ParseIP(host) == nil && strings.HasSuffix(host, "."+domain)
}

func pathMatch(reqPath, cookiePath string) bool {
	if reqPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || reqPath[len(cookiePath)] == '/'
}

// defaultPath is the directory of the request path.
func defaultPath(reqPath string) string {
	if reqPath == "" || reqPath[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(reqPath, "/")
	if i == 0 {
		return "/"
	}
	return reqPath[:i]
}
