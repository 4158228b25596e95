package service

import (
	"github.com/dstone-dev/taskboard/internal/config"
	"github.com/dstone-dev/taskboard/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Sessions *SessionManager
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	sessions := NewSessionManager(repos.Session, cfg.SessionTTL)
	return &Services{
		Auth:     NewAuthService(repos.User, sessions, cfg),
		Sessions: sessions,
	}
}
