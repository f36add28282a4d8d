package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req usecase.CreatePlaylistInput
	if !decodeJSON(w, r, &req, false) {
		return
	}

	playlist, err := h.playlistUsecase.CreatePlaylist(r.Context(), userID, req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistUsecase.GetPlaylist(r.Context(), playlistID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (h *Handler) GetUserPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlistUsecase.UserPlaylists(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"playlists": playlists})
}

func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	if err := h.playlistUsecase.DeletePlaylist(r.Context(), userID, playlistID); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddVideoToPlaylist(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, h.playlistUsecase.AddVideo)
}

func (h *Handler) RemoveVideoFromPlaylist(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, h.playlistUsecase.RemoveVideo)
}

func (h *Handler) changeMembership(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*domain.Playlist, error)) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	playlist, err := apply(r.Context(), userID, playlistID, videoID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}
