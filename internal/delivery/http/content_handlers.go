package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req usecase.CreateVideoInput
	if !decodeJSON(w, r, &req, false) {
		return
	}

	video, err := h.contentUsecase.CreateVideo(r.Context(), userID, req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	video, err := h.contentUsecase.WatchVideo(r.Context(), userID, videoID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	if err := h.contentUsecase.DeleteVideo(r.Context(), userID, videoID); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type contentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) CreateTweet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req contentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	tweet, err := h.contentUsecase.CreateTweet(r.Context(), userID, req.Content)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tweet)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	var req contentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	comment, err := h.contentUsecase.CreateComment(r.Context(), userID, videoID, req.Content)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// ListVideos serves /videos?page=&limit=&query=&sort_by=&sort_type=&user_id=.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	q := r.URL.Query()
	input := usecase.ListVideosInput{
		Page:     page,
		Limit:    limit,
		Query:    q.Get("query"),
		SortBy:   q.Get("sort_by"),
		SortType: q.Get("sort_type"),
	}
	if raw := q.Get("user_id"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user_id")
			return
		}
		input.OwnerID = ownerID
	}

	result, err := h.contentUsecase.ListVideos(r.Context(), userID, input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	video, err := h.contentUsecase.TogglePublish(r.Context(), userID, videoID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (h *Handler) GetVideoComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	result, err := h.contentUsecase.VideoComments(r.Context(), userID, videoID, page, limit)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetMyTweets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.writeUserTweets(w, r, userID)
}

func (h *Handler) GetUserTweets(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}
	h.writeUserTweets(w, r, userID)
}

func (h *Handler) writeUserTweets(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	tweets, err := h.contentUsecase.UserTweets(r.Context(), userID)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tweets": tweets})
}
