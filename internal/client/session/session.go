// Package session holds the client's authentication state machine:
// Initializing, then Authenticated or Anonymous, driven by startup token
// verification, login, logout, forced logout on 401 and token expiry.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/guard"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
	"github.com/dmitrijs2005/irccwatch/internal/client/tokenstore"
	"github.com/dmitrijs2005/irccwatch/internal/logging"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidUser = errors.New("invalid user")
	ErrEmptyToken  = errors.New("empty token")
)

// Verifier checks a stored token with the backend.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*models.VerifyTokenResponse, error)
}

// ConfigSource supplies the public configuration fetched at startup.
type ConfigSource interface {
	PublicConfig(ctx context.Context) (*models.PublicConfig, error)
}

// Redirector moves the user interface to path.
type Redirector func(ctx context.Context, path string)

// Listener observes state transitions.
type Listener func(from State, to Snapshot)

type Session struct {
	tokens   tokenstore.Store
	verifier Verifier
	config   ConfigSource
	ttl      time.Duration
	log      logging.Logger
	now      func() time.Time

	mu           sync.Mutex
	state        State
	user         *models.User
	publicConfig *models.PublicConfig
	redirect     Redirector
	listeners    []Listener
}

type Option func(*Session)

func WithConfigSource(c ConfigSource) Option {
	return func(s *Session) { s.config = c }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithRedirector(r Redirector) Option {
	return func(s *Session) { s.redirect = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(tokens tokenstore.Store, verifier Verifier, opts ...Option) *Session {
	s := &Session{
		tokens:   tokens,
		verifier: verifier,
		ttl:      tokenstore.DefaultTTL,
		log:      logging.Nop(),
		now:      time.Now,
		state:    StateInitializing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRedirector replaces the redirect target; the REPL navigator is built
// after the session.
func (s *Session) SetRedirector(r Redirector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirect = r
}

// OnChange registers a listener called after every state transition.
func (s *Session) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// PublicConfig returns the configuration fetched during Init, if any.
func (s *Session) PublicConfig() *models.PublicConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publicConfig == nil {
		return nil
	}
	c := *s.publicConfig
	return &c
}

// Init restores the session from the token store. Verification and the
// public config fetch run concurrently; a config failure is only logged.
// Init always ends in Authenticated or Anonymous.
func (s *Session) Init(ctx context.Context) Snapshot {
	token, ok, err := s.tokens.Get(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read stored token", "error", err)
		ok = false
	}

	exp, hasExp := time.Time{}, false
	if ok {
		exp, hasExp = TokenExpiry(token)
		if hasExp && !s.now().Before(exp) {
			s.log.Info(ctx, "stored token expired", "expired_at", exp)
			s.clearToken(ctx)
			ok = false
		}
	}

	var (
		g         errgroup.Group
		verified  *models.VerifyTokenResponse
		verifyErr error
		cfg       *models.PublicConfig
	)
	if ok {
		g.Go(func() error {
			verified, verifyErr = s.verifier.VerifyToken(ctx, token)
			return nil
		})
	}
	if s.config != nil {
		g.Go(func() error {
			c, err := s.config.PublicConfig(ctx)
			if err != nil {
				s.log.Warn(ctx, "failed to load public config", "error", err)
				return nil
			}
			cfg = c
			return nil
		})
	}
	_ = g.Wait()

	if cfg != nil {
		s.mu.Lock()
		s.publicConfig = cfg
		s.mu.Unlock()
	}

	if !ok {
		return s.transition(ctx, StateAnonymous, nil)
	}

	user, err := userFromVerification(verified, verifyErr)
	if err != nil {
		s.log.Info(ctx, "stored token rejected", "error", err)
		if ctx.Err() == nil {
			s.clearToken(ctx)
		}
		return s.transition(ctx, StateAnonymous, nil)
	}
	if hasExp {
		user.TokenExpiry = exp
	}
	return s.transition(ctx, StateAuthenticated, user)
}

func userFromVerification(res *models.VerifyTokenResponse, err error) (*models.User, error) {
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if res == nil || !res.Valid {
		return nil, fmt.Errorf("%w: token not valid", ErrInvalidUser)
	}
	if res.User == nil {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidUser)
	}
	return validUser(*res.User)
}

func validUser(u models.User) (*models.User, error) {
	if u.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidUser)
	}
	role, ok := models.ParseRole(string(u.Role))
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, u.Role)
	}
	u.Role = role
	return &u, nil
}

// Login stores token and marks the session Authenticated as user.
func (s *Session) Login(ctx context.Context, user models.User, token string) (Snapshot, error) {
	if token == "" {
		return s.Snapshot(), ErrEmptyToken
	}
	u, err := validUser(user)
	if err != nil {
		return s.Snapshot(), err
	}
	if err := ctx.Err(); err != nil {
		return s.Snapshot(), err
	}
	if u.TokenExpiry.IsZero() {
		if exp, ok := TokenExpiry(token); ok {
			u.TokenExpiry = exp
		}
	}
	if err := s.tokens.Set(ctx, token, s.ttl); err != nil {
		return s.Snapshot(), fmt.Errorf("store token: %w", err)
	}
	return s.transition(ctx, StateAuthenticated, u), nil
}

// Logout clears the token and user. Calling it repeatedly is harmless.
func (s *Session) Logout(ctx context.Context) Snapshot {
	s.clearToken(ctx)
	return s.transition(ctx, StateAnonymous, nil)
}

// HandleUnauthorized is the forced logout run when the backend rejects
// the token: Logout followed by a redirect to the login screen.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.Logout(ctx)
	s.redirectTo(ctx, guard.LoginPath)
}

// Snapshot returns the current state, first expiring an Authenticated
// session whose token lifetime has passed.
func (s *Session) Snapshot() Snapshot {
	s.expireIfDue(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Authenticated and Role let a Session be used directly as a guard
// principal.
func (s *Session) Authenticated() bool { return s.Snapshot().Authenticated() }

func (s *Session) Role() models.Role { return s.Snapshot().Role() }

// WatchExpiry checks token expiry every interval until ctx is done and
// redirects to login when the session lapses.
func (s *Session) WatchExpiry(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.expireIfDue(ctx) {
				s.redirectTo(ctx, guard.LoginPath)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) expireIfDue(ctx context.Context) bool {
	s.mu.Lock()
	due := s.state == StateAuthenticated && s.user != nil && s.user.Expired(s.now())
	s.mu.Unlock()
	if !due {
		return false
	}

	s.log.Info(ctx, "session expired")
	s.Logout(ctx)
	return true
}

func (s *Session) clearToken(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear token", "error", err)
	}
}

func (s *Session) redirectTo(ctx context.Context, path string) {
	s.mu.Lock()
	r := s.redirect
	s.mu.Unlock()
	if r != nil {
		r(ctx, path)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Session) transition(ctx context.Context, to State, user *models.User) Snapshot {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.user = user
	snap := s.snapshotLocked()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if from != to {
		attrs := []any{"from", from.String(), "to", to.String()}
		if snap.User != nil {
			attrs = append(attrs, "email", snap.User.Email, "role", snap.User.Role)
		}
		s.log.Info(ctx, "session state changed", attrs...)
	}
	if from == to && to != StateAuthenticated {
		return snap
	}
	for _, l := range listeners {
		l(from, snap)
	}
	return snap
}
