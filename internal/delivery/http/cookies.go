package http

import (
	"net/http"

	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

const refreshTokenCookie = "refreshToken"

func (h *Handler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) setAuthCookies(w http.ResponseWriter, tokens *usecase.TokenPair) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, tokens.AccessToken, int(h.jwt.AccessExpiry.Seconds())))
	http.SetCookie(w, h.cookie(refreshTokenCookie, tokens.RefreshToken, int(h.jwt.RefreshExpiry.Seconds())))
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, h.cookie(refreshTokenCookie, "", -1))
}
