package service

import (
	"context"
	"errors"
	"time"

	"github.com/dstone-dev/taskboard/internal/domain"
	"github.com/dstone-dev/taskboard/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionManager owns the server-side session rows behind the opaque
// cookie token.
type SessionManager struct {
	sessions repository.SessionRepository
	ttl      time.Duration
}

func NewSessionManager(sessions repository.SessionRepository, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		ttl:      ttl,
	}
}

// Create stores a new session and returns the opaque token the client
// carries in its cookie.
func (m *SessionManager) Create(ctx context.Context, userID uint, username string) (string, error) {
	token, err := randomToken(32)
	if err != nil {
		return "", err
	}

	session := &domain.Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(m.ttl),
		CreatedAt: time.Now(),
	}

	if err := m.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Current resolves the token to an identity. An unknown or expired token
// answers (nil, nil); only infrastructure failures are errors.
func (m *SessionManager) Current(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := m.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !session.ExpiresAt.After(time.Now()) {
		return nil, nil
	}

	return &domain.Identity{
		UserID:   session.UserID,
		Username: session.Username,
	}, nil
}

// Destroy removes the session. Destroying an absent session is a no-op.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.sessions.DeleteByToken(ctx, token)
}

// DestroyAllForUser removes every live session of the user, used after a
// password change to force re-login.
func (m *SessionManager) DestroyAllForUser(ctx context.Context, userID uint) error {
	return m.sessions.DeleteByUserID(ctx, userID)
}

// RenameUser refreshes the cached username on the user's sessions after
// a username change.
func (m *SessionManager) RenameUser(ctx context.Context, userID uint, username string) error {
	return m.sessions.UpdateUsername(ctx, userID, username)
}
