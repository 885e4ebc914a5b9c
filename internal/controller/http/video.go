package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	videoentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/response"
)

// VideoService defines the interface for video operations
type VideoService interface {
	ExtractVideoID(url string) (string, error)
	GetMetadata(ctx context.Context, videoID string) (*videoentity.Video, error)
	GetComments(ctx context.Context, videoID string, maxComments int) ([]videoentity.Comment, error)
}

// VideoHandler handles HTTP requests for video metadata and comments
type VideoHandler struct {
	svc VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(svc VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// RegisterRoutes registers video routes
func (h *VideoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/video", func(r chi.Router) {
		r.Post("/extract-id", h.ExtractID())
		r.Get("/metadata/{videoID}", h.GetMetadata())
		r.Get("/comments/{videoID}", h.GetComments())
	})
}

// ExtractIDRequest represents the request for extracting a video ID
type ExtractIDRequest struct {
	URL string `json:"url"`
}

// ExtractID handles POST /video/extract-id
func (h *VideoHandler) ExtractID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExtractIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if req.URL == "" {
			response.BadRequest(w, "url is required")
			return
		}

		videoID, err := h.svc.ExtractVideoID(req.URL)
		if err != nil {
			response.BadRequest(w, "invalid YouTube URL")
			return
		}

		response.OK(w, map[string]string{"video_id": videoID})
	}
}

// GetMetadata handles GET /video/metadata/{videoID}
func (h *VideoHandler) GetMetadata() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := chi.URLParam(r, "videoID")

		video, err := h.svc.GetMetadata(r.Context(), videoID)
		if err != nil {
			if errors.Is(err, videoentity.ErrVideoNotFound) {
				response.NotFound(w, "video not found: "+videoID)
				return
			}
			response.InternalError(w, "failed to fetch video metadata")
			return
		}

		response.OK(w, video)
	}
}

// GetCommentsResponse represents the response for getting comments
type GetCommentsResponse struct {
	Comments []videoentity.Comment `json:"comments"`
	Count    int                   `json:"count"`
}

// GetComments handles GET /video/comments/{videoID}
func (h *VideoHandler) GetComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := chi.URLParam(r, "videoID")

		maxComments := 0
		if m := r.URL.Query().Get("max_comments"); m != "" {
			if parsed, err := strconv.Atoi(m); err == nil && parsed > 0 {
				maxComments = parsed
			}
		}

		comments, err := h.svc.GetComments(r.Context(), videoID, maxComments)
		if err != nil {
			response.InternalError(w, "failed to fetch comments")
			return
		}

		response.OK(w, GetCommentsResponse{
			Comments: comments,
			Count:    len(comments),
		})
	}
}
