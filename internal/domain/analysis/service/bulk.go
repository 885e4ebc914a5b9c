package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/entity"
	videoentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
)

// ProgressFunc reports pipeline progress after each dispatched chunk.
// Advisory only; it never affects control flow.
type ProgressFunc func(processed, total int, chunkLabel string)

// BulkInput represents input for bulk comment analysis
type BulkInput struct {
	Comments []videoentity.Comment
	Progress ProgressFunc
}

// AnalyzeBulk runs the chunked analysis pipeline over a comment set.
//
// Chunks are processed strictly in order, one in flight at a time. A chunk
// that fails for any reason is logged and skipped; the pipeline continues
// and the finalized aggregate is returned even when every chunk failed.
// Cancellation is honored at the top of each chunk iteration and returns
// the aggregate built so far alongside the context error.
func (a *Analyzer) AnalyzeBulk(ctx context.Context, in BulkInput) (*entity.AggregatedResult, error) {
	agg := newAggregator()

	comments := in.Comments
	if len(comments) > a.maxComments {
		comments = comments[:a.maxComments]
	}

	chunks := chunkComments(comments, a.chunkSize)
	if len(chunks) == 0 {
		return agg.finalize(), nil
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}

	processed := 0
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return agg.finalize(), err
		}

		if i > 0 {
			if err := sleepCtx(ctx, a.interChunkDelay); err != nil {
				return agg.finalize(), err
			}
		}

		label := fmt.Sprintf("chunk %d/%d", i+1, len(chunks))
		res, err := a.AnalyzeChunk(ctx, chunk)
		processed += len(chunk)
		if err != nil {
			a.logger.Warn("skipping failed chunk",
				"chunk", label,
				"comments", len(chunk),
				"error", err,
			)
		} else {
			agg.merge(res, len(chunk))
		}

		if in.Progress != nil {
			in.Progress(processed, total, label)
		}
	}

	return agg.finalize(), nil
}

// sleepCtx sleeps for d unless the context ends first
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
