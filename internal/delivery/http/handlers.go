package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/config"
	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/logging"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	authUsecase     *usecase.AuthUsecase
	relationUsecase *usecase.RelationUsecase
	statsUsecase    *usecase.StatsUsecase
	contentUsecase  *usecase.ContentUsecase
	playlistUsecase *usecase.PlaylistUsecase
	cookies         config.CookieConfig
	jwt             config.JWTConfig
}

func NewHandler(
	auth *usecase.AuthUsecase,
	relations *usecase.RelationUsecase,
	stats *usecase.StatsUsecase,
	content *usecase.ContentUsecase,
	playlists *usecase.PlaylistUsecase,
	cookies config.CookieConfig,
	jwt config.JWTConfig,
) *Handler {
	return &Handler{
		authUsecase:     auth,
		relationUsecase: relations,
		statsUsecase:    stats,
		contentUsecase:  content,
		playlistUsecase: playlists,
		cookies:         cookies,
		jwt:             jwt,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUsecaseError maps usecase and store errors onto status codes.
// Credential failures never say why they failed.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, usecase.ErrSuperseded),
		errors.Is(err, usecase.ErrTokenExpired),
		errors.Is(err, usecase.ErrTokenMalformed),
		errors.Is(err, usecase.ErrSignatureInvalid):
		logging.FromContext(r.Context()).Info("credential rejected", "reason", err.Error())
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrChannelNotFound),
		errors.Is(err, usecase.ErrVideoNotFound),
		errors.Is(err, usecase.ErrTargetNotFound),
		errors.Is(err, usecase.ErrPlaylistNotFound),
		errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		writeError(w, http.StatusForbidden, "You are not allowed to do that")
	case errors.Is(err, domain.ErrTransient):
		logging.FromContext(r.Context()).Warn("store unavailable", "error", err)
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a JSON body. An empty body is accepted when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid request body")
	return false
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; absent means zero.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return n, true
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
