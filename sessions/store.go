package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/LandDroid/Oppacu-Search-by-Customer/internal/errors"
)

const tokenGenerationLength = 32

// Store is the process-wide token -> session mapping. All access goes through
// Create/Validate/Revoke; the expiry check and the activity renewal happen
// under one lock acquisition, so two concurrent requests bearing the same
// token cannot both observe a session that one of them has already expired.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	maxIdle  time.Duration
	nowTime  func() time.Time // injectable for testing
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates a session store with the given sliding idle timeout.
func NewStore(maxIdle time.Duration, options ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]Session),
		maxIdle:  maxIdle,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Create issues a fresh token for the given credentials. Two logins with the
// same credentials yield two independent sessions.
func (s *Store) Create(username, password string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", errors.Wrap(err, "[Create] generateToken")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Regenerate on the vanishingly unlikely collision rather than clobber a
	// live session.
	for {
		if _, exists := s.sessions[token]; !exists {
			break
		}
		if token, err = generateToken(); err != nil {
			return "", errors.Wrap(err, "[Create] generateToken")
		}
	}

	now := s.nowTime()
	s.sessions[token] = Session{
		Username:     username,
		Password:     password,
		CreatedAt:    now,
		LastActivity: now,
	}
	return token, nil
}

// Validate resolves a token to its session. An unknown token returns
// ErrSessionNotFound. A session idle for longer than the configured timeout is
// deleted and reported as ErrSessionExpired. Otherwise the idle clock resets
// and the session, as of this validation, is returned.
func (s *Store) Validate(token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}

	now := s.nowTime()
	if now.Sub(session.LastActivity) > s.maxIdle {
		delete(s.sessions, token)
		return Session{}, apperrors.ErrSessionExpired
	}

	session.LastActivity = now
	s.sessions[token] = session
	return session, nil
}

// Revoke deletes the session for a token. Revoking an unknown or already
// revoked token is not an error.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of sessions currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// DeleteExpiredSessions removes every session whose idle window has lapsed.
// Validate already enforces expiry lazily; this only bounds the memory held
// by sessions that are never revisited.
func (s *Store) DeleteExpiredSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowTime()
	removed := 0
	for token, session := range s.sessions {
		if now.Sub(session.LastActivity) > s.maxIdle {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// StartSweeper runs DeleteExpiredSessions every interval until ctx is
// cancelled. An interval of zero disables sweeping entirely.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := s.DeleteExpiredSessions()
				if onSweep != nil {
					onSweep(removed)
				}
			}
		}
	}()
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenGenerationLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "rand.Read")
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
