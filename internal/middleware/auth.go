package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/logging"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

type contextKey string

const userKey contextKey = "user"

const AccessTokenCookie = "accessToken"

type AuthMiddleware struct {
	tokens *usecase.TokenUsecase
	auth   *usecase.AuthUsecase
}

func NewAuthMiddleware(tokens *usecase.TokenUsecase, auth *usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, auth: auth}
}

// Authenticate resolves the caller from the access token cookie or the
// Authorization header and stores the sanitized user in the request context.
// Every credential failure gets the same 401 body; the reason is only logged.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())

		token := accessToken(r)
		if token == "" {
			logger.Info("request rejected", "reason", "missing access token")
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := m.tokens.VerifyAccess(token)
		if err != nil {
			logger.Info("request rejected", "reason", err.Error())
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := m.auth.GetUserByID(r.Context(), userID)
		switch {
		case err == nil:
		case errors.Is(err, usecase.ErrUserNotFound):
			logger.Info("request rejected", "reason", "unknown identity", "user_id", userID)
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		case errors.Is(err, domain.ErrTransient):
			logger.Warn("identity lookup unavailable", "error", err)
			w.Header().Set("Retry-After", "1")
			writeJSONError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
			return
		default:
			logger.Error("identity lookup failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
