package service

import (
	"context"
	"errors"
	"time"

	"github.com/dstone-dev/taskboard/internal/config"
	"github.com/dstone-dev/taskboard/internal/domain"
	"github.com/dstone-dev/taskboard/internal/repository"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	sessions *SessionManager
	hasher   PasswordHasher
	resetTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions *SessionManager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		resetTTL: cfg.ResetTokenTTL,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User         *domain.User
	SessionToken string
}

type ResetIssue struct {
	Token     string
	ExpiresAt time.Time
}

// Register creates the account but does not authenticate it; the caller
// is sent to the login form.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrIncorrectPassword
	}

	token, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, SessionToken: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Destroy(ctx, sessionToken)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password, stores the new hash
// and destroys the caller's session so they must log in again.
func (s *AuthService) ChangePassword(ctx context.Context, sessionToken string, userID uint, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return domain.ErrPasswordMismatch
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(current, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	return s.sessions.Destroy(ctx, sessionToken)
}

// ChangeUsername renames the account and refreshes the username cached
// on the caller's sessions. On a duplicate name the session is left
// untouched.
func (s *AuthService) ChangeUsername(ctx context.Context, userID uint, newUsername string) error {
	if err := s.userRepo.UpdateUsername(ctx, userID, newUsername); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return s.sessions.RenameUser(ctx, userID, newUsername)
}

// ForgotPassword issues a fresh single-use reset token valid for the
// configured window, overwriting any earlier token.
func (s *AuthService) ForgotPassword(ctx context.Context, username string) (*ResetIssue, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// 16 bytes = 128 bits of entropy
	token, err := randomToken(16)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.resetTTL)

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}

	return &ResetIssue{Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyResetToken answers the user behind a token that is present and
// not yet expired.
func (s *AuthService) VerifyResetToken(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.GetByValidResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidResetToken
		}
		return nil, err
	}
	return user, nil
}

// ResetPassword consumes the token: the new hash is stored and the token
// cleared, so a replayed token fails.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	if newPassword != confirm {
		return domain.ErrPasswordMismatch
	}

	user, err := s.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}

	// Whoever held the old password loses any live session
	return s.sessions.DestroyAllForUser(ctx, user.ID)
}
