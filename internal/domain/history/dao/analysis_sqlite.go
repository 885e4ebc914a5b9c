package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/entity"
)

// AnalysisRepository defines the interface for analysis persistence
type AnalysisRepository interface {
	// Save stores an analysis record and its comments in one transaction
	Save(ctx context.Context, rec *entity.AnalysisRecord, comments []entity.StoredComment) error
	// ListRecent retrieves the most recent analysis records, newest first
	ListRecent(ctx context.Context, limit int) ([]entity.AnalysisRecord, error)
}

// AnalysisSqlite implements AnalysisRepository for sqlite
type AnalysisSqlite struct {
	db *sql.DB
}

// NewAnalysisSqlite creates a new sqlite analysis repository
func NewAnalysisSqlite(db *sql.DB) *AnalysisSqlite {
	return &AnalysisSqlite{db: db}
}

// Save stores an analysis record and its comments. A failed comment insert
// rolls back the analysis row.
func (r *AnalysisSqlite) Save(ctx context.Context, rec *entity.AnalysisRecord, comments []entity.StoredComment) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.AnalysisDate.IsZero() {
		rec.AnalysisDate = time.Now().UTC()
	}
	if rec.SourceType == "" {
		rec.SourceType = entity.SourceTypeComments
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO video_analysis
			(id, video_id, video_title, channel_name, analysis_date,
			 total_comments_analyzed, average_sentiment, analysis_data, source_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.VideoID,
		rec.VideoTitle,
		rec.ChannelName,
		rec.AnalysisDate.Format(time.RFC3339),
		rec.TotalComments,
		rec.AverageSentiment,
		string(rec.Analysis),
		rec.SourceType,
	)
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}

	for _, c := range comments {
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO comments
				(analysis_id, video_id, comment_id, author, text,
				 published_at, like_count, reply_count, sentiment_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			rec.ID,
			rec.VideoID,
			c.CommentID,
			c.Author,
			c.Text,
			c.PublishedAt,
			c.LikeCount,
			c.ReplyCount,
			c.SentimentScore,
		)
		if err != nil {
			return fmt.Errorf("inserting comment %s: %w", c.CommentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent analysis records, newest first
func (r *AnalysisSqlite) ListRecent(ctx context.Context, limit int) ([]entity.AnalysisRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, video_id, video_title, channel_name, analysis_date,
		       total_comments_analyzed, average_sentiment, analysis_data, source_type
		FROM video_analysis
		ORDER BY analysis_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []entity.AnalysisRecord
	for rows.Next() {
		var rec entity.AnalysisRecord
		var date, analysisData string
		if err := rows.Scan(
			&rec.ID,
			&rec.VideoID,
			&rec.VideoTitle,
			&rec.ChannelName,
			&date,
			&rec.TotalComments,
			&rec.AverageSentiment,
			&analysisData,
			&rec.SourceType,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			rec.AnalysisDate = t
		}
		rec.Analysis = []byte(analysisData)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return records, nil
}
