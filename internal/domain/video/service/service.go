package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/youtube"
)

// YouTubeClient defines the interface for YouTube Data API operations
type YouTubeClient interface {
	GetVideo(ctx context.Context, videoID string) (*youtube.VideoData, error)
	GetComments(ctx context.Context, in youtube.GetCommentsInput) (*youtube.GetCommentsOutput, error)
}

// Service handles video metadata and comment retrieval
type Service struct {
	yt          YouTubeClient
	maxComments int
	logger      *slog.Logger
}

// New creates a new video service
func New(yt YouTubeClient, maxComments int, logger *slog.Logger) *Service {
	if maxComments <= 0 {
		maxComments = 500
	}
	return &Service{yt: yt, maxComments: maxComments, logger: logger}
}

// ExtractVideoID extracts the video ID from a YouTube URL
func (s *Service) ExtractVideoID(url string) (string, error) {
	return entity.ExtractVideoID(url)
}

// GetMetadata fetches video metadata
func (s *Service) GetMetadata(ctx context.Context, videoID string) (*entity.Video, error) {
	data, err := s.yt.GetVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetching video metadata: %w", err)
	}
	if data == nil {
		return nil, entity.ErrVideoNotFound
	}

	return &entity.Video{
		ID:           data.ID,
		Title:        data.Title,
		Channel:      data.Channel,
		Description:  data.Description,
		PublishedAt:  data.PublishedAt,
		Thumbnail:    data.Thumbnail,
		ViewCount:    data.ViewCount,
		LikeCount:    data.LikeCount,
		CommentCount: data.CommentCount,
	}, nil
}

// GetComments fetches up to maxComments top-level comments, following page
// tokens until the limit or the last page
func (s *Service) GetComments(ctx context.Context, videoID string, maxComments int) ([]entity.Comment, error) {
	if maxComments <= 0 || maxComments > s.maxComments {
		maxComments = s.maxComments
	}

	comments := make([]entity.Comment, 0, maxComments)
	pageToken := ""
	for len(comments) < maxComments {
		page, err := s.yt.GetComments(ctx, youtube.GetCommentsInput{
			VideoID:    videoID,
			MaxResults: maxComments - len(comments),
			PageToken:  pageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching comments: %w", err)
		}

		for _, c := range page.Comments {
			if len(comments) >= maxComments {
				break
			}
			comments = append(comments, entity.Comment{
				ID:          c.ID,
				Text:        c.Text,
				Author:      c.Author,
				PublishedAt: c.PublishedAt,
				LikeCount:   c.LikeCount,
				ReplyCount:  c.ReplyCount,
			})
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.logger.Info("fetched comments", "video_id", videoID, "count", len(comments))
	return comments, nil
}
