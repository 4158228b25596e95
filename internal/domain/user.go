package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"uniqueIndex:idx_users_username;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex:idx_users_email;not null"`
	PasswordHash   string     `json:"-" gorm:"not null"`
	ProfilePicture *string    `json:"profilePicture"`
	ResetToken     *string    `json:"-" gorm:"uniqueIndex:idx_users_reset_token"`
	ResetExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// HasValidResetToken reports whether the user carries a reset token that
// has not yet expired at the given instant.
func (u *User) HasValidResetToken(now time.Time) bool {
	return u.ResetToken != nil && u.ResetExpiresAt != nil && u.ResetExpiresAt.After(now)
}

// Session is the server-side record behind the opaque cookie token. The
// token itself carries no identity; everything lives in this row.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Username  string    `json:"username" gorm:"not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the resolved authenticated principal attached to a request
// by the auth middleware.
type Identity struct {
	UserID   uint
	Username string
}
