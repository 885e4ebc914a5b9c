package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/entity"
	videoentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/entity"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/gemini"
)

const (
	defaultChunkSize       = 10
	defaultMaxComments     = 500
	defaultMinCallInterval = 4 * time.Second
	defaultMaxOutputTokens = 8192
)

// TextGenerator defines the interface for the generative model endpoint
type TextGenerator interface {
	GenerateContent(ctx context.Context, in gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error)
}

// Config holds analyzer tuning parameters
type Config struct {
	ChunkSize       int
	InterChunkDelay time.Duration
	MaxComments     int
	MinCallInterval time.Duration
}

// Analyzer runs semantic analysis of comments and free text through the
// model endpoint. Each Analyzer owns its rate limiter, so independent
// instances pace their calls separately.
type Analyzer struct {
	gen     TextGenerator
	limiter *rate.Limiter
	logger  *slog.Logger

	chunkSize       int
	interChunkDelay time.Duration
	maxComments     int
}

// New creates a new Analyzer
func New(gen TextGenerator, cfg Config, logger *slog.Logger) *Analyzer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.MaxComments <= 0 {
		cfg.MaxComments = defaultMaxComments
	}
	if cfg.MinCallInterval <= 0 {
		cfg.MinCallInterval = defaultMinCallInterval
	}

	return &Analyzer{
		gen:             gen,
		limiter:         rate.NewLimiter(rate.Every(cfg.MinCallInterval), 1),
		logger:          logger,
		chunkSize:       cfg.ChunkSize,
		interChunkDelay: cfg.InterChunkDelay,
		maxComments:     cfg.MaxComments,
	}
}

var defaultSafetySettings = []gemini.SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
}

var (
	fenceOpenRe  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
)

// stripCodeFence removes markdown code-fence wrapping from a model payload
func stripCodeFence(s string) string {
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// callModel waits for the rate gate, issues one generation call, and maps
// provider failure signals to typed errors. When jsonOutput is set the
// model is asked for application/json.
func (a *Analyzer) callModel(ctx context.Context, prompt string, jsonOutput bool) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate gate: %w", err)
	}

	temperature := 0.2
	topP := 0.95
	topK := 40
	genCfg := &gemini.GenerationConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: defaultMaxOutputTokens,
	}
	if jsonOutput {
		genCfg.ResponseMIMEType = "application/json"
	}

	resp, err := a.gen.GenerateContent(ctx, gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: prompt}}},
		},
		GenerationConfig: genCfg,
		SafetySettings:   defaultSafetySettings,
	})
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) && apiErr.QuotaExhausted() {
			return "", fmt.Errorf("%w: %s", entity.ErrQuotaExceeded, apiErr.Message)
		}
		return "", fmt.Errorf("calling model: %w", err)
	}

	if reason := resp.BlockReason(); reason != "" {
		return "", &entity.BlockedError{Reason: reason}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", entity.ErrEmptyResponse
	}

	return stripCodeFence(text), nil
}

// chunkResultKeys are the known top-level sections of a chunk result
var chunkResultKeys = map[string]bool{
	"overall_sentiment":   true,
	"top_entities":        true,
	"key_themes":          true,
	"emotion_analysis":    true,
	"engagement_insights": true,
}

// decodeChunkResult parses a model payload into a ChunkResult. Unknown
// top-level keys are logged and ignored; invalid JSON keeps the raw text
// for diagnostics.
func (a *Analyzer) decodeChunkResult(payload string) (*entity.ChunkResult, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &sections); err != nil {
		return nil, &entity.MalformedResponseError{Raw: payload, Err: err}
	}
	for key := range sections {
		if !chunkResultKeys[key] {
			a.logger.Warn("ignoring unknown key in analysis response", "key", key)
		}
	}

	var res entity.ChunkResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, &entity.MalformedResponseError{Raw: payload, Err: err}
	}

	// Drop entity mentions that resolved to no usable name
	mentions := res.TopEntities[:0]
	for _, m := range res.TopEntities {
		if m.Name == "" {
			continue
		}
		mentions = append(mentions, m)
	}
	res.TopEntities = mentions

	return &res, nil
}

// AnalyzeChunk analyzes one chunk of comments, renumbered 1..k for the
// prompt, and returns the parsed result
func (a *Analyzer) AnalyzeChunk(ctx context.Context, comments []videoentity.Comment) (*entity.ChunkResult, error) {
	var b strings.Builder
	b.WriteString(bulkAnalysisPrompt)
	b.WriteString("\n\nText to analyze:\n")
	for i, c := range comments {
		fmt.Fprintf(&b, "Comment %d: %s\n\n", i+1, c.Text)
	}

	payload, err := a.callModel(ctx, b.String(), true)
	if err != nil {
		return nil, err
	}

	return a.decodeChunkResult(payload)
}

// AnalyzeText runs single-text sentiment and entity analysis
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*entity.TextAnalysis, error) {
	prompt := fmt.Sprintf("%s\n\nText to analyze:\n%s", analysisPrompt, text)

	payload, err := a.callModel(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var res entity.TextAnalysis
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, &entity.MalformedResponseError{Raw: payload, Err: err}
	}

	return &res, nil
}

var numberedLineRe = regexp.MustCompile(`^\d+\.\s*`)

// ExtractIdeas extracts actionable ideas from text. The model responds
// with a numbered list, parsed line by line.
func (a *Analyzer) ExtractIdeas(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf("%s\n\nText to analyze:\n%s", ideaExtractionPrompt, text)

	payload, err := a.callModel(ctx, prompt, false)
	if err != nil {
		return nil, err
	}

	ideas := []string{}
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !numberedLineRe.MatchString(line) {
			continue
		}
		ideas = append(ideas, numberedLineRe.ReplaceAllString(line, ""))
	}

	return ideas, nil
}
