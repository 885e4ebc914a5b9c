package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	analysisentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/entity"
	analysisservice "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/service"
	historyentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/entity"
	videoentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/response"
)

// AnalyzerService defines the interface for analysis operations
type AnalyzerService interface {
	AnalyzeBulk(ctx context.Context, in analysisservice.BulkInput) (*analysisentity.AggregatedResult, error)
	AnalyzeText(ctx context.Context, text string) (*analysisentity.TextAnalysis, error)
	ExtractIdeas(ctx context.Context, text string) ([]string, error)
}

// HistorySaver persists finished analyses
type HistorySaver interface {
	SaveAnalysis(ctx context.Context, rec *historyentity.AnalysisRecord, comments []historyentity.StoredComment) error
}

// AnalysisHandler handles HTTP requests for AI analysis
type AnalysisHandler struct {
	analyzer AnalyzerService
	history  HistorySaver
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer AnalyzerService, history HistorySaver) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, history: history}
}

// RegisterRoutes registers analysis routes
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/bulk-comments", h.BulkComments())
		r.Post("/text", h.Text())
		r.Post("/ideas", h.Ideas())
	})
}

// CommentPayload represents one comment in an analysis request
type CommentPayload struct {
	ID             string  `json:"id,omitempty"`
	Text           string  `json:"text"`
	Author         string  `json:"author,omitempty"`
	PublishedAt    string  `json:"published_at,omitempty"`
	LikeCount      int     `json:"like_count,omitempty"`
	ReplyCount     int     `json:"reply_count,omitempty"`
	SentimentScore float64 `json:"sentiment_score,omitempty"`
}

// VideoDataPayload represents video metadata accompanying an analysis request
type VideoDataPayload struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// BulkCommentsRequest represents the request for bulk comment analysis
type BulkCommentsRequest struct {
	Comments  []CommentPayload  `json:"comments"`
	VideoData *VideoDataPayload `json:"video_data,omitempty"`
	SaveToDB  *bool             `json:"save_to_db,omitempty"`
}

// BulkCommentsResponse represents the bulk analysis response
type BulkCommentsResponse struct {
	Analysis         *analysisentity.AggregatedResult `json:"analysis"`
	CommentsAnalyzed int                              `json:"comments_analyzed"`
}

// BulkComments handles POST /analysis/bulk-comments
func (h *AnalysisHandler) BulkComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkCommentsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if len(req.Comments) == 0 {
			response.BadRequest(w, "comments are required")
			return
		}

		comments := make([]videoentity.Comment, 0, len(req.Comments))
		for _, c := range req.Comments {
			comments = append(comments, videoentity.Comment{
				ID:          c.ID,
				Text:        c.Text,
				Author:      c.Author,
				PublishedAt: c.PublishedAt,
				LikeCount:   c.LikeCount,
				ReplyCount:  c.ReplyCount,
			})
		}

		result, err := h.analyzer.AnalyzeBulk(r.Context(), analysisservice.BulkInput{Comments: comments})
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		saveToDB := req.SaveToDB == nil || *req.SaveToDB
		if saveToDB && req.VideoData != nil && req.VideoData.ID != "" {
			h.saveAnalysis(r.Context(), &req, result)
		}

		response.OK(w, BulkCommentsResponse{
			Analysis:         result,
			CommentsAnalyzed: len(req.Comments),
		})
	}
}

// saveAnalysis persists the finished analysis; persistence failure is not
// surfaced to the client, matching the best-effort store semantics
func (h *AnalysisHandler) saveAnalysis(ctx context.Context, req *BulkCommentsRequest, result *analysisentity.AggregatedResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}

	stored := make([]historyentity.StoredComment, 0, len(req.Comments))
	for _, c := range req.Comments {
		stored = append(stored, historyentity.StoredComment{
			CommentID:      c.ID,
			Author:         c.Author,
			Text:           c.Text,
			PublishedAt:    c.PublishedAt,
			LikeCount:      c.LikeCount,
			ReplyCount:     c.ReplyCount,
			SentimentScore: c.SentimentScore,
		})
	}

	_ = h.history.SaveAnalysis(ctx, &historyentity.AnalysisRecord{
		VideoID:          req.VideoData.ID,
		VideoTitle:       req.VideoData.Title,
		ChannelName:      req.VideoData.Channel,
		TotalComments:    len(req.Comments),
		AverageSentiment: result.OverallSentiment.AverageScore,
		Analysis:         payload,
	}, stored)
}

// TextRequest represents a single-text analysis request
type TextRequest struct {
	Text string `json:"text"`
}

// Text handles POST /analysis/text
func (h *AnalysisHandler) Text() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if req.Text == "" {
			response.BadRequest(w, "text is required")
			return
		}

		result, err := h.analyzer.AnalyzeText(r.Context(), req.Text)
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		response.OK(w, result)
	}
}

// Ideas handles POST /analysis/ideas
func (h *AnalysisHandler) Ideas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if req.Text == "" {
			response.BadRequest(w, "text is required")
			return
		}

		ideas, err := h.analyzer.ExtractIdeas(r.Context(), req.Text)
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		response.OK(w, map[string][]string{"ideas": ideas})
	}
}

// handleAnalysisError maps analysis errors to HTTP status codes. Raw
// provider payloads stay server-side.
func handleAnalysisError(w http.ResponseWriter, err error) {
	var blocked *analysisentity.BlockedError
	var malformed *analysisentity.MalformedResponseError

	switch {
	case errors.Is(err, analysisentity.ErrQuotaExceeded):
		response.TooManyRequests(w, "analysis quota exceeded, try again later")
	case errors.As(err, &blocked):
		response.BadGateway(w, "analysis blocked by provider: "+blocked.Reason)
	case errors.As(err, &malformed):
		response.BadGateway(w, "invalid JSON response from AI")
	case errors.Is(err, analysisentity.ErrEmptyResponse):
		response.BadGateway(w, "no response from AI")
	default:
		response.InternalError(w, "analysis failed")
	}
}
