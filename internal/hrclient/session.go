package hrclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated context threaded through every backend call:
// the bearer token, the user descriptor that came with it, and the thread id
// the backend uses to correlate this session's turns into one conversation.
type Session struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
	ThreadID string `json:"threadId"`
	// ExpiresAt is read from the token's exp claim without verification;
	// zero when the token carries none. Verification is the backend's job.
	ExpiresAt time.Time `json:"expiresAt"`
}

// ErrNoSession is returned by LoadSession when nothing is persisted.
var ErrNoSession = errors.New("no persisted session")

// NewSession builds a session from a login result. The thread id is derived
// from the session start time and stays fixed for the session's lifetime.
func NewSession(token, userName, role string) *Session {
	return &Session{
		Token:     token,
		UserName:  userName,
		Role:      role,
		ThreadID:  strconv.FormatInt(time.Now().UnixMilli(), 10),
		ExpiresAt: tokenExpiry(token),
	}
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an expiry never report expired.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Save persists the session to the user config dir.
func (s *Session) Save() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession restores the persisted session, if any.
func LoadSession() (*Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

// ClearSession removes the persisted session (logout).
func ClearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sessionPath() (string, error) {
	if override := os.Getenv("HR_TUI_SESSION_FILE"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hr-tui", "session.json"), nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Opaque or claimless tokens yield the zero time.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
