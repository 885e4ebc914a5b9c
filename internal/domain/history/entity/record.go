package entity

import (
	"encoding/json"
	"time"
)

// SourceTypeComments marks analyses produced from video comments
const SourceTypeComments = "comments"

// AnalysisRecord represents one persisted analysis run
type AnalysisRecord struct {
	ID               string          `json:"id"`
	VideoID          string          `json:"video_id"`
	VideoTitle       string          `json:"video_title,omitempty"`
	ChannelName      string          `json:"channel_name,omitempty"`
	AnalysisDate     time.Time       `json:"analysis_date"`
	TotalComments    int             `json:"total_comments_analyzed"`
	AverageSentiment float64         `json:"average_sentiment"`
	SourceType       string          `json:"source_type"`
	Analysis         json.RawMessage `json:"analysis_data,omitempty"`
}

// StoredComment represents one analyzed comment persisted with a record
type StoredComment struct {
	CommentID      string  `json:"comment_id"`
	Author         string  `json:"author"`
	Text           string  `json:"text"`
	PublishedAt    string  `json:"published_at"`
	LikeCount      int     `json:"like_count"`
	ReplyCount     int     `json:"reply_count"`
	SentimentScore float64 `json:"sentiment_score"`
}
