// Package auth provides optional operator login for the panel.
//
// A single credential is configured out of band (username plus a bcrypt
// hash produced by `rconpanel hash-password`). When no hash is configured
// the panel runs open, matching the unauthenticated default.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/voidhawk/rconpanel/internal/dependencies/clock"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session represents an authenticated operator session
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	// Username is the operator login name
	Username string
	// PasswordHash is the bcrypt hash of the operator password.
	// Empty disables authentication entirely.
	PasswordHash string
	// SessionDuration controls how long a login stays valid
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration (auth disabled)
func DefaultConfig() Config {
	return Config{
		Username:        "admin",
		SessionDuration: 12 * time.Hour,
	}
}

// Service handles operator authentication and session management
type Service struct {
	cfg   Config
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates a new auth Service
func New(cfg Config, clock clock.Clock) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		cfg:      cfg,
		clock:    clock,
		sessions: make(map[string]*Session),
	}
}

// Enabled reports whether operator login is required
func (s *Service) Enabled() bool {
	return s.cfg.PasswordHash != ""
}

// Login checks the credential and creates a session
func (s *Service) Login(username, password string) (*Session, error) {
	if !s.Enabled() {
		return nil, ErrInvalidCredentials
	}
	if username != s.cfg.Username {
		// Compare against a constant dummy hash so attempts with a wrong
		// username take as long as attempts with a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(username), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// createSession creates a new session for the operator
func (s *Service) createSession(username string) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
