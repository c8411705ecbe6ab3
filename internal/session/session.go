// Package session tracks the client's authentication state: the token
// pair, the current user, and the authenticated/unauthenticated signal
// the data cache keys its lifecycle on.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"paycheckbuddy/internal/core"
	"paycheckbuddy/internal/gateway"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	mu            sync.Mutex
	auth          gateway.Authenticator
	user          core.User
	accessToken   string
	refreshToken  string
	authenticated bool
	onChange      []func(authenticated bool)
}

var _ gateway.CredentialSource = (*Session)(nil)

func New(auth gateway.Authenticator) *Session {
	return &Session{auth: auth}
}

// OnChange registers a hook fired on every authenticated/unauthenticated
// transition. Hooks run synchronously, outside the session lock.
func (s *Session) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	creds, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.install(creds)
	return nil
}

func (s *Session) Register(ctx context.Context, username, password string) error {
	creds, err := s.auth.Register(ctx, username, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.install(creds)
	return nil
}

// Logout drops the token pair. The change hook gives the data cache its
// chance to clear every collection before another user logs in.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = core.User{}
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	s.transition(false)
}

// Refresh trades the refresh token for a new access token. A rejected
// refresh ends the session, mirroring the server invalidating it.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()
	if refresh == "" {
		return fmt.Errorf("refresh: no session")
	}

	access, err := s.auth.RefreshToken(ctx, refresh)
	if err != nil {
		slog.WarnContext(ctx, "Token refresh rejected, ending session", "error", err)
		s.Logout()
		return fmt.Errorf("refresh: %w", err)
	}

	s.mu.Lock()
	s.accessToken = access
	s.mu.Unlock()
	return nil
}

// Authenticated reports whether a usable access token is held. Tokens
// that parse as JWTs are additionally checked against their exp claim;
// opaque tokens count as valid until the server says otherwise.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	token := s.accessToken
	s.mu.Unlock()
	if token == "" {
		return false
	}
	return !tokenExpired(token)
}

// User returns the logged-in user, if any.
func (s *Session) User() (core.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.accessToken != ""
}

// AccessToken implements gateway.CredentialSource.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// RefreshAccessToken implements gateway.CredentialSource: the HTTP
// client calls it once when a request comes back 401.
func (s *Session) RefreshAccessToken(ctx context.Context) (string, error) {
	if err := s.Refresh(ctx); err != nil {
		return "", err
	}
	return s.AccessToken(), nil
}

func (s *Session) install(creds gateway.Credentials) {
	s.mu.Lock()
	s.user = creds.User
	s.accessToken = creds.AccessToken
	s.refreshToken = creds.RefreshToken
	s.mu.Unlock()
	s.transition(true)
}

// transition fires the change hooks, but only on actual state changes.
func (s *Session) transition(authenticated bool) {
	s.mu.Lock()
	if s.authenticated == authenticated {
		s.mu.Unlock()
		return
	}
	s.authenticated = authenticated
	hooks := make([]func(bool), len(s.onChange))
	copy(hooks, s.onChange)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(authenticated)
	}
}

func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false // opaque token, expiry unknown
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !time.Now().Before(exp.Time)
}
