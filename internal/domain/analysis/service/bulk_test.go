package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/gemini"
)

// scriptedGenerator replays canned payloads or errors, one per call
type scriptedGenerator struct {
	payloads []string
	errs     []error
	calls    int
}

func (g *scriptedGenerator) GenerateContent(_ context.Context, _ gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error) {
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	payload := ""
	if i < len(g.payloads) {
		payload = g.payloads[i]
	}
	return &gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Parts: []gemini.Part{{Text: payload}}}},
		},
	}, nil
}

func newTestAnalyzer(gen TextGenerator, chunkSize int) *Analyzer {
	return New(gen, Config{
		ChunkSize:       chunkSize,
		MinCallInterval: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnalyzeBulkEmptyInputMakesNoCalls(t *testing.T) {
	gen := &scriptedGenerator{}
	a := newTestAnalyzer(gen, 5)

	result, err := a.AnalyzeBulk(context.Background(), BulkInput{})

	require.NoError(t, err)
	assert.Zero(t, gen.calls)
	assert.Zero(t, result.OverallSentiment.Positive)
	assert.Empty(t, result.TopEntities)
}

func TestAnalyzeBulkWeightedAverageAcrossChunks(t *testing.T) {
	gen := &scriptedGenerator{
		payloads: []string{
			`{"overall_sentiment": {"positive": 4, "neutral": 1, "negative": 0, "average_score": 0.8}}`,
			`{"overall_sentiment": {"positive": 1, "neutral": 1, "negative": 3, "average_score": -0.2}}`,
		},
	}
	a := newTestAnalyzer(gen, 5)

	result, err := a.AnalyzeBulk(context.Background(), BulkInput{
		Comments: makeComments("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.InDelta(t, 0.3, result.OverallSentiment.AverageScore, 1e-9)
	assert.Equal(t, 5, result.OverallSentiment.Positive)
	assert.Equal(t, 3, result.OverallSentiment.Negative)
}

func TestAnalyzeBulkContinuesPastFailedChunk(t *testing.T) {
	gen := &scriptedGenerator{
		payloads: []string{
			"",
			`{"overall_sentiment": {"positive": 5, "neutral": 0, "negative": 0, "average_score": 0.6}}`,
		},
		errs: []error{&gemini.APIError{Code: 500, Message: "internal"}, nil},
	}
	a := newTestAnalyzer(gen, 5)

	result, err := a.AnalyzeBulk(context.Background(), BulkInput{
		Comments: makeComments("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	// the failed chunk never parsed, so it contributes nothing to the divisor
	assert.InDelta(t, 0.6, result.OverallSentiment.AverageScore, 1e-9)
	assert.Equal(t, 5, result.OverallSentiment.Positive)
}

func TestAnalyzeBulkAllChunksFailed(t *testing.T) {
	gen := &scriptedGenerator{
		errs: []error{
			&gemini.APIError{Code: 429, Message: "quota"},
			&gemini.APIError{Code: 429, Message: "quota"},
		},
	}
	a := newTestAnalyzer(gen, 3)

	result, err := a.AnalyzeBulk(context.Background(), BulkInput{
		Comments: makeComments("a", "b", "c", "d", "e"),
	})

	require.NoError(t, err, "per-chunk failures never abort the pipeline")
	assert.Zero(t, result.OverallSentiment.Positive)
	assert.Zero(t, result.OverallSentiment.Neutral)
	assert.Zero(t, result.OverallSentiment.Negative)
	assert.Zero(t, result.OverallSentiment.AverageScore)
}

func TestAnalyzeBulkProgressReporting(t *testing.T) {
	gen := &scriptedGenerator{
		payloads: []string{`{}`, `{}`, `{}`},
	}
	a := newTestAnalyzer(gen, 2)

	var processed []int
	var labels []string
	_, err := a.AnalyzeBulk(context.Background(), BulkInput{
		Comments: makeComments("a", "b", "c", "d", "e"),
		Progress: func(p, total int, label string) {
			processed = append(processed, p)
			labels = append(labels, label)
			assert.Equal(t, 5, total)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 5}, processed)
	assert.Equal(t, []string{"chunk 1/3", "chunk 2/3", "chunk 3/3"}, labels)
}

func TestAnalyzeBulkCancellationKeepsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	gen := &scriptedGenerator{
		payloads: []string{
			`{"overall_sentiment": {"positive": 2, "neutral": 0, "negative": 0, "average_score": 0.4}}`,
		},
	}
	a := New(gen, Config{
		ChunkSize:       2,
		InterChunkDelay: time.Hour, // cancellation must interrupt the delay
		MinCallInterval: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	result, err := a.AnalyzeBulk(ctx, BulkInput{
		Comments: makeComments("a", "b", "c", "d"),
	})

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result, "already-aggregated state survives cancellation")
	assert.Equal(t, 2, result.OverallSentiment.Positive)
}

func TestAnalyzeBulkCapsAtMaxComments(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{`{}`}}
	a := New(gen, Config{
		ChunkSize:       10,
		MaxComments:     3,
		MinCallInterval: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var total int
	_, err := a.AnalyzeBulk(context.Background(), BulkInput{
		Comments: makeComments("a", "b", "c", "d", "e"),
		Progress: func(_, t int, _ string) { total = t },
	})

	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 3, total)
}
