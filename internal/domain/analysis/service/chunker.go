package service

import (
	"strings"

	videoentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
)

// chunkComments splits comments into ordered batches of up to size comments
// with non-empty trimmed text. Comments with empty text are excluded before
// batching, so no chunk is ever empty.
func chunkComments(comments []videoentity.Comment, size int) [][]videoentity.Comment {
	if size <= 0 {
		size = defaultChunkSize
	}

	eligible := make([]videoentity.Comment, 0, len(comments))
	for _, c := range comments {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		eligible = append(eligible, c)
	}

	var chunks [][]videoentity.Comment
	for start := 0; start < len(eligible); start += size {
		end := start + size
		if end > len(eligible) {
			end = len(eligible)
		}
		chunks = append(chunks, eligible[start:end])
	}

	return chunks
}
