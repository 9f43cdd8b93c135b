// Package session owns the signed-in state of the client: the persistent
// cookie jar, an opaque session handle and detection of sign-outs made by
// other clutter processes.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/db"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
)

// Authenticator is the backend auth surface the service wraps.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Verify(ctx context.Context, code string) (*models.MessageResponse, error)
	GenerateCode(ctx context.Context) (*models.MessageResponse, error)
}

// Store persists the session record.
type Store interface {
	Session(ctx context.Context) (*db.SessionRecord, error)
	SaveSession(ctx context.Context, handle, email string, startedAt time.Time) (int64, error)
	ClearSession(ctx context.Context) (int64, error)
	Generation(ctx context.Context) (int64, error)
	Vacuum(ctx context.Context) error
}

// CookieClearer drops every stored credential.
type CookieClearer interface {
	Clear(ctx context.Context) error
}

// Notifier raises a desktop notification.
type Notifier func(title, message string)

// Handle identifies a local sign-in. It is opaque to the backend; the
// credential itself is the cookie.
type Handle struct {
	ID        string
	Email     string
	StartedAt time.Time
}

// Service wraps the auth endpoints and keeps the local session record in
// step with them.
type Service struct {
	auth   Authenticator
	store  Store
	jar    CookieClearer
	notify Notifier
	now    func() time.Time

	mu         sync.Mutex
	generation int64
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notify = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a session service and records the current store generation as
// already seen.
func New(auth Authenticator, store Store, jar CookieClearer, opts ...Option) (*Service, error) {
	s := &Service{
		auth:   auth,
		store:  store,
		jar:    jar,
		notify: func(string, string) {},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	gen, err := store.Generation(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read session generation: %w", err)
	}
	s.generation = gen

	return s, nil
}

// Login starts a session and records a new handle.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.begin(ctx, email)
	return resp, nil
}

// Register creates an account, which also signs the user in.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	resp, err := s.auth.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	s.begin(ctx, email)
	return resp, nil
}

// Logout signs out on the backend and always ends the local session, even
// when the backend call fails.
func (s *Service) Logout(ctx context.Context) (*models.AuthResponse, error) {
	resp, err := s.auth.Logout(ctx)
	if endErr := s.end(ctx); endErr != nil && err == nil {
		err = endErr
	}
	return resp, err
}

// CurrentUser asks the backend who owns the session. An unauthorized answer
// for a session this client believed active ends it locally.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil && api.IsUnauthorized(err) {
		s.expire(ctx)
	}
	return user, err
}

// Verify submits an email verification code.
func (s *Service) Verify(ctx context.Context, code string) (*models.MessageResponse, error) {
	return s.auth.Verify(ctx, code)
}

// GenerateCode requests a fresh verification code.
func (s *Service) GenerateCode(ctx context.Context) (*models.MessageResponse, error) {
	resp, err := s.auth.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}
	msg := "Verification code has been sent to your email"
	if resp != nil && resp.Message != "" {
		msg = resp.Message
	}
	s.notify("Clutter: code sent", msg)
	return resp, nil
}

// Handle returns the active session handle, or nil when signed out.
func (s *Service) Handle(ctx context.Context) (*Handle, error) {
	rec, err := s.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	if !rec.Active() {
		return nil, nil
	}
	return &Handle{ID: rec.Handle, Email: rec.Email, StartedAt: rec.StartedAt}, nil
}

// Changed reports whether another process changed the session since this
// service last wrote or observed it.
func (s *Service) Changed(ctx context.Context) (bool, error) {
	gen, err := s.store.Generation(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		return false, nil
	}
	s.generation = gen
	return true, nil
}

func (s *Service) begin(ctx context.Context, email string) {
	handle := uuid.NewString()
	gen, err := s.store.SaveSession(ctx, handle, email, s.now())
	if err != nil {
		// The cookie is already set; only the local record is missing.
		logger.Error("failed to save session", "error", err)
		return
	}
	s.setGeneration(gen)
	logger.Info("session started", "handle", handle)
}

func (s *Service) end(ctx context.Context) error {
	if err := s.jar.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	gen, err := s.store.ClearSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.setGeneration(gen)
	if err := s.store.Vacuum(ctx); err != nil {
		logger.Warn("failed to vacuum session database", "error", err)
	}
	logger.Info("session ended")
	return nil
}

func (s *Service) expire(ctx context.Context) {
	rec, err := s.store.Session(ctx)
	if err != nil || !rec.Active() {
		return
	}
	if err := s.end(ctx); err != nil {
		logger.Error("failed to end expired session", "error", err)
		return
	}
	s.notify("Clutter: session expired", "Sign in again to keep viewing analytics.")
}

func (s *Service) setGeneration(gen int64) {
	s.mu.Lock()
	s.generation = gen
	s.mu.Unlock()
}
