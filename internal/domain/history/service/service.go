package service

import (
	"context"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/dao"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/entity"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Service handles analysis history
type Service struct {
	repo dao.AnalysisRepository
}

// New creates a new history service
func New(repo dao.AnalysisRepository) *Service {
	return &Service{repo: repo}
}

// SaveAnalysis persists an analysis record together with the analyzed
// comments
func (s *Service) SaveAnalysis(ctx context.Context, rec *entity.AnalysisRecord, comments []entity.StoredComment) error {
	return s.repo.Save(ctx, rec, comments)
}

// GetHistory retrieves recent analysis records, newest first. The limit
// defaults to 10 and is capped at 100.
func (s *Service) GetHistory(ctx context.Context, limit int) ([]entity.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []entity.AnalysisRecord{}
	}

	return records, nil
}
