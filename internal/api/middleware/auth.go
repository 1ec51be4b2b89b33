package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/go-desk/internal/auth"
	"github.com/hugh/go-desk/internal/database/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// Auth verifies the bearer credential and attaches the verified user id to
// the request context. Any verification failure answers 401 with the same
// message; the cause never leaks.
func Auth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := tokens.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserVerifier confirms the subject of a verified token is still allowed in.
type UserVerifier interface {
	GetActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ActiveUser runs after Auth and rejects tokens whose subject has been
// deactivated. A valid signature is not enough to keep a session alive.
func ActiveUser(users UserVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := users.GetActiveUser(r.Context(), GetUserID(r.Context())); err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
}

// GetUserID extracts the verified user id from the context.
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
