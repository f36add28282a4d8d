package http

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

func clientInfo(r *http.Request) usecase.ClientInfo {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return usecase.ClientInfo{IPAddress: ip, UserAgent: r.UserAgent()}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterInput
	if !decodeJSON(w, r, &req, false) {
		return
	}

	user, err := h.authUsecase.Register(r.Context(), req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    int64        `json:"expires_at"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	user, tokens, err := h.authUsecase.Login(r.Context(), login, req.Password, clientInfo(r))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	h.setAuthCookies(w, tokens)
	writeJSON(w, http.StatusOK, loginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), userID, clientInfo(r)); err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken answers every credential failure with the same 401, including
// reuse of a rotated token.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	token := req.RefreshToken
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		token = cookie.Value
	}

	tokens, err := h.authUsecase.Refresh(r.Context(), token, clientInfo(r))
	if errors.Is(err, domain.ErrTransient) {
		writeUsecaseError(w, r, err)
		return
	}
	if err != nil {
		h.clearAuthCookies(w)
		writeUsecaseError(w, r, unauthorized(err))
		return
	}

	h.setAuthCookies(w, tokens)
	writeJSON(w, http.StatusOK, tokens)
}

// unauthorized folds identity lookups into the token error family so the
// refresh endpoint cannot be used to enumerate accounts.
func unauthorized(err error) error {
	if errors.Is(err, usecase.ErrUserNotFound) {
		return usecase.ErrTokenMalformed
	}
	return err
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	tokens, err := h.authUsecase.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	h.setAuthCookies(w, tokens)
	writeJSON(w, http.StatusOK, tokens)
}

func (h *Handler) GetAuthEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	events, err := h.authUsecase.AuthEvents(r.Context(), userID, limit)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
