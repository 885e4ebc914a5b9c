package entity

import (
	"errors"
	"regexp"
)

// Video represents YouTube video metadata
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Description  string `json:"description,omitempty"`
	PublishedAt  string `json:"published_at"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ViewCount    int64  `json:"view_count"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
}

// Comment represents a single YouTube comment
type Comment struct {
	ID          string `json:"id,omitempty"`
	Text        string `json:"text"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at"`
	LikeCount   int    `json:"like_count"`
	ReplyCount  int    `json:"reply_count"`
}

// Domain errors
var (
	ErrInvalidURL    = errors.New("invalid YouTube URL")
	ErrVideoNotFound = errors.New("video not found")
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID extracts the 11-character video ID from a YouTube URL.
// Returns ErrInvalidURL when no supported URL form matches.
func ExtractVideoID(url string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", ErrInvalidURL
}
