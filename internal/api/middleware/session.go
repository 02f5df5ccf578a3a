package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/service"
)

type contextKey string

const (
	UserKey contextKey = "authUser"

	// SessionCookie is the name of the cookie carrying the opaque session
	// token.
	SessionCookie = "session_id"
)

// Session resolves the session cookie into the subject snapshot captured
// at login and stores it on the request context. Requests without a live
// session are rejected with 401.
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			subject, err := authService.RequireSession(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					log.Printf("ERROR [middleware.Session] session lookup failed: %v", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken returns the session token from the request cookie, or ""
// if the cookie is absent.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetUser returns the subject snapshot placed on the context by Session.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"please login first"}`))
}
