package repository

import (
	"context"
	"time"

	"github.com/dstone-dev/taskboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	UpdateUsername(ctx context.Context, id uint, username string) error
	SetResetToken(ctx context.Context, id uint, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uint) error
	GetByValidResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uint) error
	UpdateUsername(ctx context.Context, userID uint, username string) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
}
