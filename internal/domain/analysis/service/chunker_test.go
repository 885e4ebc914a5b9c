package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	videoentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
)

func makeComments(texts ...string) []videoentity.Comment {
	comments := make([]videoentity.Comment, 0, len(texts))
	for _, text := range texts {
		comments = append(comments, videoentity.Comment{Text: text})
	}
	return comments
}

func TestChunkCommentsSplitsInOrder(t *testing.T) {
	chunks := chunkComments(makeComments("a", "b", "c", "d", "e"), 2)

	require.Len(t, chunks, 3)
	assert.Equal(t, "a", chunks[0][0].Text)
	assert.Equal(t, "b", chunks[0][1].Text)
	assert.Equal(t, "c", chunks[1][0].Text)
	assert.Equal(t, "e", chunks[2][0].Text)
}

func TestChunkCommentsSkipsEmptyText(t *testing.T) {
	chunks := chunkComments(makeComments("a", "", "  ", "b", "\t\n", "c"), 2)

	require.Len(t, chunks, 2)
	assert.Equal(t, "a", chunks[0][0].Text)
	assert.Equal(t, "b", chunks[0][1].Text)
	assert.Equal(t, "c", chunks[1][0].Text)
}

func TestChunkCommentsAllEmpty(t *testing.T) {
	assert.Empty(t, chunkComments(makeComments("", "   "), 10))
	assert.Empty(t, chunkComments(nil, 10))
}
