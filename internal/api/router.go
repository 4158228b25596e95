package api

import (
	"net/http"

	"github.com/dstone-dev/taskboard/internal/api/handlers"
	"github.com/dstone-dev/taskboard/internal/api/middleware"
	"github.com/dstone-dev/taskboard/internal/config"
	"github.com/dstone-dev/taskboard/internal/repository"
	"github.com/dstone-dev/taskboard/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	settingsHandler := handlers.NewSettingsHandler(services.Auth)
	resetHandler := handlers.NewResetHandler(services.Auth)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/home", http.StatusFound)
	})

	// Public routes
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Password reset flow (no session required)
	r.Get("/forgot-password", resetHandler.ForgotPasswordForm)
	r.Post("/forgot-password", resetHandler.ForgotPassword)
	r.Get("/verify-token", resetHandler.VerifyToken)
	r.Post("/verify-token", resetHandler.VerifyToken)
	r.Get("/reset-password/{token}", resetHandler.ResetPasswordForm)
	r.Post("/reset-password/{token}", resetHandler.ResetPassword)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Sessions, repos.User))

		r.Get("/home", authHandler.Home)
		r.Get("/settings", settingsHandler.SettingsPage)
		r.Post("/settings/username", settingsHandler.ChangeUsername)
		r.Post("/settings/password", settingsHandler.ChangePassword)
	})

	return r
}
