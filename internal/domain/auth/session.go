// Package auth holds the explicit admin authentication context.
package auth

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// ErrNoCredentials is returned when re-authentication is attempted on a
// session that never logged in.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials are the admin login credentials kept for re-authentication.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the admin auth context. It is created at login, cleared at
// logout and read at every admin operation boundary.
type Session struct {
	mu            sync.RWMutex
	creds         *Credentials
	authenticated bool
	since         time.Time
}

// NewSession returns an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Begin marks the session authenticated with the given credentials.
func (s *Session) Begin(creds Credentials, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := creds
	s.creds = &c
	s.authenticated = true
	s.since = now
}

// Clear drops credentials and authentication state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
	s.authenticated = false
	s.since = time.Time{}
}

// Invalidate keeps the credentials but marks the session as needing a
// re-login.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
}

// Authenticated reports whether the session is currently logged in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.authenticated
}

// Since returns the time of the last successful login.
func (s *Session) Since() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.since
}

// Credentials returns a copy of the stored credentials.
func (s *Session) Credentials() (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil {
		return Credentials{}, ErrNoCredentials
	}
	return *s.creds, nil
}
