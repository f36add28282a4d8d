package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GuranshBedi/Backendd/internal/middleware"
)

func (h *Handler) GetChannelProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserID(r.Context())

	profile, err := h.statsUsecase.ChannelProfile(r.Context(), chi.URLParam(r, "username"), viewerID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Dashboard handlers

func (h *Handler) GetMyChannelStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.statsUsecase.ChannelStats(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetChannelStats(w http.ResponseWriter, r *http.Request) {
	channelID, ok := uuidParam(w, r, "channelId")
	if !ok {
		return
	}

	stats, err := h.statsUsecase.ChannelStats(r.Context(), channelID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetMyChannelVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videos, err := h.statsUsecase.ChannelVideos(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}
