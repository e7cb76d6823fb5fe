package api

import "sync"

// Session holds the bearer token of a logged in user. At most one token is
// active at a time; each login overwrites the previous one.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns a session holding token, which may be empty.
func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear discards the token.
func (s *Session) Clear() {
	s.SetToken("")
}
