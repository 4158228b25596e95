package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dstone-dev/taskboard/internal/api/middleware"
	"github.com/dstone-dev/taskboard/internal/domain"
	"github.com/dstone-dev/taskboard/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Register"))
}

// Register creates the account and sends the client to the login form.
// Conflicts re-render the form with a deliberately generic message that
// does not reveal which field collided.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		http.Error(w, "Username, email and password are required", http.StatusBadRequest)
		return
	}

	_, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			w.Write([]byte("Registration failed. Please try again."))
			return
		}
		log.Printf("ERROR [handlers.Register] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Login"))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			w.Write([]byte("User not found"))
		case errors.Is(err, domain.ErrIncorrectPassword):
			w.Write([]byte("Incorrect password"))
		default:
			log.Printf("ERROR [handlers.Login] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.SessionToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/home", http.StatusFound)
}

// Logout destroys the session if one exists and always redirects to the
// login form.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("ERROR [handlers.Logout] %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"userId":   identity.UserID,
		"username": identity.Username,
	})
}
