package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 30 * time.Second

	// maxResultsPerPage is the Data API ceiling for commentThreads.list
	maxResultsPerPage = 100
)

// Client is a YouTube Data API v3 client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new YouTube Data API client
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an error from the YouTube Data API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube API error: %s (code: %d, status: %s)", e.Message, e.Code, e.Status)
}

// ErrorResponse represents an error response envelope from the API
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// VideoData represents video metadata assembled from snippet and statistics
type VideoData struct {
	ID           string
	Title        string
	Channel      string
	Description  string
	PublishedAt  string
	Thumbnail    string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			// The Data API serializes counts as decimal strings
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// GetVideo retrieves snippet and statistics for a video.
// Returns nil when the video does not exist.
// GET /videos?part=snippet,statistics
func (c *Client) GetVideo(ctx context.Context, videoID string) (*VideoData, error) {
	endpoint := fmt.Sprintf("%s/videos", c.baseURL)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "snippet,statistics")
	params.Set("id", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var out videoListResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	if len(out.Items) == 0 {
		return nil, nil
	}

	item := out.Items[0]
	return &VideoData{
		ID:           videoID,
		Title:        item.Snippet.Title,
		Channel:      item.Snippet.ChannelTitle,
		Description:  item.Snippet.Description,
		PublishedAt:  item.Snippet.PublishedAt,
		Thumbnail:    item.Snippet.Thumbnails.High.URL,
		ViewCount:    parseCount(item.Statistics.ViewCount),
		LikeCount:    parseCount(item.Statistics.LikeCount),
		CommentCount: parseCount(item.Statistics.CommentCount),
	}, nil
}

// CommentData represents a top-level comment from the Data API
type CommentData struct {
	ID          string
	Text        string
	Author      string
	PublishedAt string
	LikeCount   int
	ReplyCount  int
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				ID      string `json:"id"`
				Snippet struct {
					TextDisplay       string `json:"textDisplay"`
					AuthorDisplayName string `json:"authorDisplayName"`
					PublishedAt       string `json:"publishedAt"`
					LikeCount         int    `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
			TotalReplyCount int `json:"totalReplyCount"`
		} `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// GetCommentsInput represents input for fetching a page of comment threads
type GetCommentsInput struct {
	VideoID    string
	MaxResults int
	PageToken  string
}

// GetCommentsOutput represents one page of comment threads
type GetCommentsOutput struct {
	Comments      []CommentData
	NextPageToken string
}

// GetComments retrieves one page of top-level comments, most relevant first.
// GET /commentThreads?part=snippet
func (c *Client) GetComments(ctx context.Context, in GetCommentsInput) (*GetCommentsOutput, error) {
	endpoint := fmt.Sprintf("%s/commentThreads", c.baseURL)

	maxResults := in.MaxResults
	if maxResults <= 0 || maxResults > maxResultsPerPage {
		maxResults = maxResultsPerPage
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "snippet")
	params.Set("videoId", in.VideoID)
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(maxResults))
	if in.PageToken != "" {
		params.Set("pageToken", in.PageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var out commentThreadsResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	comments := make([]CommentData, 0, len(out.Items))
	for _, item := range out.Items {
		top := item.Snippet.TopLevelComment
		comments = append(comments, CommentData{
			ID:          top.ID,
			Text:        top.Snippet.TextDisplay,
			Author:      top.Snippet.AuthorDisplayName,
			PublishedAt: top.Snippet.PublishedAt,
			LikeCount:   top.Snippet.LikeCount,
			ReplyCount:  item.Snippet.TotalReplyCount,
		})
	}

	return &GetCommentsOutput{
		Comments:      comments,
		NextPageToken: out.NextPageToken,
	}, nil
}

// do executes an HTTP request and decodes the response
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	// Check for error response
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
		}
		return &errResp.Error
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
