package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/dstone-dev/taskboard/internal/domain"
	"github.com/dstone-dev/taskboard/internal/repository"
	"github.com/dstone-dev/taskboard/internal/service"
	"gorm.io/gorm"
)

type contextKey string

const (
	IdentityKey     contextKey = "identity"
	SessionTokenKey contextKey = "sessionToken"
)

// SessionCookie is the name of the cookie carrying the opaque session
// token.
const SessionCookie = "taskboard_session"

// Auth gates a route group on a live session. The cookie token must
// resolve to a session AND the referenced user must still exist, so a
// stale session cannot outlive a deleted account. Anything else is a
// redirect to the login form.
func Auth(sessions *service.SessionManager, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			identity, err := sessions.Current(r.Context(), cookie.Value)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] session lookup failed: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if identity == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if _, err := users.GetByID(r.Context(), identity.UserID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					_ = sessions.Destroy(r.Context(), cookie.Value)
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				log.Printf("ERROR [middleware.Auth] user lookup failed: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			ctx = context.WithValue(ctx, SessionTokenKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the authenticated identity attached by Auth.
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*domain.Identity)
	return identity, ok
}

// GetSessionToken returns the raw session token attached by Auth.
func GetSessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenKey).(string)
	return token, ok
}
