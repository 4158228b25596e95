package postgres

import (
	"context"

	"github.com/dstone-dev/taskboard/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByToken is a no-op when the token does not exist, so logout is
// idempotent.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "token = ?", token).Error
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "user_id = ?", userID).Error
}

func (r *sessionRepository) UpdateUsername(ctx context.Context, userID uint, username string) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("user_id = ?", userID).
		Update("username", username).Error
}
