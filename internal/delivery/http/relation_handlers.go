package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

type toggleFunc func(ctx context.Context, actorID, targetID uuid.UUID) (*usecase.ToggleResult, error)

func (h *Handler) toggle(param string, fn toggleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		targetID, ok := uuidParam(w, r, param)
		if !ok {
			return
		}

		result, err := fn(r.Context(), userID, targetID)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (h *Handler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle("videoId", h.relationUsecase.ToggleVideoLike)(w, r)
}

func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle("commentId", h.relationUsecase.ToggleCommentLike)(w, r)
}

func (h *Handler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggle("tweetId", h.relationUsecase.ToggleTweetLike)(w, r)
}

func (h *Handler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	h.toggle("channelId", h.relationUsecase.ToggleSubscription)(w, r)
}

func (h *Handler) GetLikedVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videos, err := h.statsUsecase.LikedVideos(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (h *Handler) GetChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, ok := uuidParam(w, r, "channelId")
	if !ok {
		return
	}

	members, err := h.statsUsecase.Subscribers(r.Context(), channelID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) GetSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, ok := uuidParam(w, r, "subscriberId")
	if !ok {
		return
	}

	members, err := h.statsUsecase.Subscriptions(r.Context(), subscriberID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}
