package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	historyentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/response"
)

// HistoryService defines the interface for history retrieval
type HistoryService interface {
	GetHistory(ctx context.Context, limit int) ([]historyentity.AnalysisRecord, error)
}

// HistoryHandler handles HTTP requests for analysis history
type HistoryHandler struct {
	svc HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(svc HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// RegisterRoutes registers history routes
func (h *HistoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/history", h.GetHistory())
}

// GetHistoryResponse represents the history response
type GetHistoryResponse struct {
	History []historyentity.AnalysisRecord `json:"history"`
	Count   int                            `json:"count"`
}

// GetHistory handles GET /history
func (h *HistoryHandler) GetHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		records, err := h.svc.GetHistory(r.Context(), limit)
		if err != nil {
			response.InternalError(w, "failed to fetch history")
			return
		}

		response.OK(w, GetHistoryResponse{
			History: records,
			Count:   len(records),
		})
	}
}
