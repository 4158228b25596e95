package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dstone-dev/taskboard/internal/api/middleware"
	"github.com/dstone-dev/taskboard/internal/domain"
	"github.com/dstone-dev/taskboard/internal/service"
)

type SettingsHandler struct {
	authService *service.AuthService
}

func NewSettingsHandler(authService *service.AuthService) *SettingsHandler {
	return &SettingsHandler{authService: authService}
}

func (h *SettingsHandler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Settings"))
}

func (h *SettingsHandler) ChangeUsername(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	newUsername := r.FormValue("username")
	if newUsername == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	if err := h.authService.ChangeUsername(r.Context(), identity.UserID, newUsername); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			http.Error(w, "Could not update username", http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [handlers.ChangeUsername] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/home", http.StatusFound)
}

// ChangePassword invalidates the current session on success, so the
// client lands back on the login form.
func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	token, _ := middleware.GetSessionToken(r.Context())

	current := r.FormValue("currentPassword")
	newPassword := r.FormValue("newPassword")
	confirm := r.FormValue("confirmPassword")

	err := h.authService.ChangePassword(r.Context(), token, identity.UserID, current, newPassword, confirm)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			http.Error(w, "Passwords do not match", http.StatusBadRequest)
		case errors.Is(err, domain.ErrIncorrectPassword):
			http.Error(w, "Current password is incorrect", http.StatusBadRequest)
		default:
			log.Printf("ERROR [handlers.ChangePassword] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
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
