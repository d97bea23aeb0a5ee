package auth

import (
	"encoding/base64"
	"sync"
)

// Session holds the cached Basic credential for the lifetime of the
// process. The api client only reads it; Login, Logout and HandleError on
// the Manager are the only writers.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns a session seeded with a previously cached token, which
// may be empty
func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) clear() { s.set("") }

// EncodeBasic builds the opaque Basic token for a username and password
func EncodeBasic(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
