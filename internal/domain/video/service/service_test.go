package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/youtube"
)

type fakeYouTube struct {
	video *youtube.VideoData
	pages []youtube.GetCommentsOutput
	calls []youtube.GetCommentsInput
}

func (f *fakeYouTube) GetVideo(_ context.Context, _ string) (*youtube.VideoData, error) {
	return f.video, nil
}

func (f *fakeYouTube) GetComments(_ context.Context, in youtube.GetCommentsInput) (*youtube.GetCommentsOutput, error) {
	f.calls = append(f.calls, in)
	if len(f.calls) > len(f.pages) {
		return &youtube.GetCommentsOutput{}, nil
	}
	return &f.pages[len(f.calls)-1], nil
}

func commentPage(next string, n int, prefix string) youtube.GetCommentsOutput {
	page := youtube.GetCommentsOutput{NextPageToken: next}
	for i := 0; i < n; i++ {
		page.Comments = append(page.Comments, youtube.CommentData{
			ID:   fmt.Sprintf("%s-%d", prefix, i),
			Text: fmt.Sprintf("comment %s-%d", prefix, i),
		})
	}
	return page
}

func newTestService(yt YouTubeClient, maxComments int) *Service {
	return New(yt, maxComments, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetMetadata(t *testing.T) {
	yt := &fakeYouTube{video: &youtube.VideoData{
		ID:        "dQw4w9WgXcQ",
		Title:     "Test Video",
		Channel:   "Test Channel",
		ViewCount: 100,
	}}
	svc := newTestService(yt, 500)

	video, err := svc.GetMetadata(context.Background(), "dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.Equal(t, "Test Video", video.Title)
	assert.Equal(t, int64(100), video.ViewCount)
}

func TestGetMetadataNotFound(t *testing.T) {
	svc := newTestService(&fakeYouTube{}, 500)

	_, err := svc.GetMetadata(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrVideoNotFound)
}

func TestGetCommentsFollowsPages(t *testing.T) {
	yt := &fakeYouTube{pages: []youtube.GetCommentsOutput{
		commentPage("page2", 100, "p1"),
		commentPage("page3", 100, "p2"),
		commentPage("", 50, "p3"),
	}}
	svc := newTestService(yt, 500)

	comments, err := svc.GetComments(context.Background(), "dQw4w9WgXcQ", 500)

	require.NoError(t, err)
	assert.Len(t, comments, 250)
	require.Len(t, yt.calls, 3)
	assert.Empty(t, yt.calls[0].PageToken)
	assert.Equal(t, "page2", yt.calls[1].PageToken)
	assert.Equal(t, "page3", yt.calls[2].PageToken)
	assert.Equal(t, "p1-0", comments[0].ID)
	assert.Equal(t, "p3-49", comments[249].ID)
}

func TestGetCommentsStopsAtLimit(t *testing.T) {
	yt := &fakeYouTube{pages: []youtube.GetCommentsOutput{
		commentPage("page2", 100, "p1"),
		commentPage("page3", 100, "p2"),
	}}
	svc := newTestService(yt, 500)

	comments, err := svc.GetComments(context.Background(), "dQw4w9WgXcQ", 150)

	require.NoError(t, err)
	assert.Len(t, comments, 150)
	require.Len(t, yt.calls, 2)
	assert.Equal(t, 50, yt.calls[1].MaxResults, "second page only asks for the remainder")
}

func TestGetCommentsCapsRequestedMax(t *testing.T) {
	yt := &fakeYouTube{pages: []youtube.GetCommentsOutput{
		commentPage("", 30, "p1"),
	}}
	svc := newTestService(yt, 20)

	comments, err := svc.GetComments(context.Background(), "dQw4w9WgXcQ", 10000)

	require.NoError(t, err)
	assert.Len(t, comments, 20)
}
