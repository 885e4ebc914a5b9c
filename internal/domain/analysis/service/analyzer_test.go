package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/gemini"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestAnalyzeChunkQuotaError(t *testing.T) {
	gen := &scriptedGenerator{
		errs: []error{&gemini.APIError{Code: 429, Message: "quota exhausted"}},
	}
	a := newTestAnalyzer(gen, 5)

	_, err := a.AnalyzeChunk(context.Background(), makeComments("a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrQuotaExceeded)
}

func TestAnalyzeChunkTransportError(t *testing.T) {
	gen := &scriptedGenerator{
		errs: []error{&gemini.APIError{Code: 503, Message: "unavailable"}},
	}
	a := newTestAnalyzer(gen, 5)

	_, err := a.AnalyzeChunk(context.Background(), makeComments("a"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrQuotaExceeded)
}

type blockedGenerator struct{}

func (blockedGenerator) GenerateContent(_ context.Context, _ gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error) {
	return &gemini.GenerateContentResponse{
		PromptFeedback: &gemini.PromptFeedback{BlockReason: "SAFETY"},
	}, nil
}

func TestAnalyzeChunkBlocked(t *testing.T) {
	a := newTestAnalyzer(blockedGenerator{}, 5)

	_, err := a.AnalyzeChunk(context.Background(), makeComments("a"))

	var blocked *entity.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "SAFETY", blocked.Reason)
}

func TestAnalyzeChunkEmptyResponse(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{"   \n  "}}
	a := newTestAnalyzer(gen, 5)

	_, err := a.AnalyzeChunk(context.Background(), makeComments("a"))

	assert.ErrorIs(t, err, entity.ErrEmptyResponse)
}

func TestAnalyzeChunkMalformedResponseKeepsRaw(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{"not json at all"}}
	a := newTestAnalyzer(gen, 5)

	_, err := a.AnalyzeChunk(context.Background(), makeComments("a"))

	var malformed *entity.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "not json at all", malformed.Raw)
}

func TestAnalyzeChunkNormalizesEntityMentions(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{`{
		"overall_sentiment": {"positive": 1, "neutral": 0, "negative": 0, "average_score": 0.5},
		"top_entities": ["GoLang", {"name": "Docker", "count": 3, "type": "PRODUCT"}, {"name": "  "}, ""],
		"unknown_section": {"x": 1}
	}`}}
	a := newTestAnalyzer(gen, 5)

	res, err := a.AnalyzeChunk(context.Background(), makeComments("a"))

	require.NoError(t, err)
	require.Len(t, res.TopEntities, 2)
	assert.Equal(t, "GoLang", res.TopEntities[0].Name)
	assert.Equal(t, 1, res.TopEntities[0].Count, "bare labels default to count 1")
	assert.Equal(t, "Docker", res.TopEntities[1].Name)
	assert.Equal(t, 3, res.TopEntities[1].Count)
}

func TestAnalyzeChunkFencedPayload(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{
		"```json\n{\"overall_sentiment\": {\"positive\": 2, \"neutral\": 0, \"negative\": 0, \"average_score\": 0.9}}\n```",
	}}
	a := newTestAnalyzer(gen, 5)

	res, err := a.AnalyzeChunk(context.Background(), makeComments("a", "b"))

	require.NoError(t, err)
	assert.Equal(t, 2, res.OverallSentiment.Positive)
}

func TestAnalyzeText(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{`{
		"sentiment_score": 0.7,
		"sentiment_label": "positive",
		"entities": ["ACME Corp"],
		"themes": ["pricing"],
		"key_phrases": ["worth the money"]
	}`}}
	a := newTestAnalyzer(gen, 5)

	res, err := a.AnalyzeText(context.Background(), "worth the money, ACME nailed it")

	require.NoError(t, err)
	assert.InDelta(t, 0.7, res.SentimentScore, 1e-9)
	assert.Equal(t, "positive", res.SentimentLabel)
	assert.Equal(t, entity.StringList{"ACME Corp"}, res.Entities)
}

func TestExtractIdeasParsesNumberedList(t *testing.T) {
	gen := &scriptedGenerator{payloads: []string{
		"1. Improve audio mixing\n2. Add chapter markers\nsome stray line\n3. Post more often",
	}}
	a := newTestAnalyzer(gen, 5)

	ideas, err := a.ExtractIdeas(context.Background(), "comments text")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Improve audio mixing",
		"Add chapter markers",
		"Post more often",
	}, ideas)
}
