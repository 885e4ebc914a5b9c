package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Sentiment holds per-label comment counts and the mean sentiment score
type Sentiment struct {
	Positive     int     `json:"positive"`
	Neutral      int     `json:"neutral"`
	Negative     int     `json:"negative"`
	AverageScore float64 `json:"average_score"`
}

// Entity is a named entity with its mention count
type Entity struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Type  string `json:"type,omitempty"`
}

// Theme is a recurring topic with representative comments
type Theme struct {
	Theme          string   `json:"theme"`
	Frequency      int      `json:"frequency"`
	Sentiment      string   `json:"sentiment,omitempty"`
	SampleComments []string `json:"sample_comments"`
}

// Emotions holds per-emotion comment counts
type Emotions struct {
	Joy          int `json:"joy"`
	Anger        int `json:"anger"`
	Sadness      int `json:"sadness"`
	Fear         int `json:"fear"`
	Surprise     int `json:"surprise"`
	Trust        int `json:"trust"`
	Anticipation int `json:"anticipation"`
}

// Engagement holds counts of engagement categories
type Engagement struct {
	ConstructiveFeedback int `json:"constructive_feedback"`
	Criticism            int `json:"criticism"`
	Suggestions          int `json:"suggestions"`
	Questions            int `json:"questions"`
	Praise               int `json:"praise"`
}

// ChunkResult is the parsed model output for one chunk of comments.
// Every section is optional in the wire format; absent sections decode to
// their zero value.
type ChunkResult struct {
	OverallSentiment   Sentiment       `json:"overall_sentiment"`
	TopEntities        []EntityMention `json:"top_entities"`
	KeyThemes          []ThemeMention  `json:"key_themes"`
	EmotionAnalysis    Emotions        `json:"emotion_analysis"`
	EngagementInsights Engagement      `json:"engagement_insights"`
}

// EntityMention is one element of top_entities. The model sometimes emits a
// bare label string instead of an object; both forms decode to the same
// shape. Mentions without a usable name keep Name == "" and are dropped
// during normalization.
type EntityMention struct {
	Name  string
	Count int
	Type  string
}

// UnmarshalJSON accepts either "Label" or {"name": ..., "count": ..., "type": ...}
func (m *EntityMention) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		m.Name = strings.TrimSpace(label)
		m.Count = 1
		return nil
	}

	var obj struct {
		Name  string `json:"name"`
		Count *int   `json:"count"`
		Type  string `json:"type"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	m.Name = strings.TrimSpace(obj.Name)
	m.Type = obj.Type
	m.Count = 1
	if obj.Count != nil && *obj.Count > 0 {
		m.Count = *obj.Count
	}
	return nil
}

// ThemeMention is one element of key_themes
type ThemeMention struct {
	Theme          string     `json:"theme"`
	Frequency      *int       `json:"frequency"`
	Sentiment      string     `json:"sentiment"`
	SampleComments StringList `json:"sample_comments"`
}

// Occurrences returns the theme frequency, defaulting to 1 when absent
func (t ThemeMention) Occurrences() int {
	if t.Frequency != nil && *t.Frequency > 0 {
		return *t.Frequency
	}
	return 1
}

// StringList decodes a JSON array whose elements may not all be strings;
// non-string elements are kept as their compact JSON text
type StringList []string

// UnmarshalJSON coerces every array element to a string
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		out = append(out, string(bytes.TrimSpace(r)))
	}

	*l = out
	return nil
}

// AggregatedResult is the merged analysis across all chunks. Entities are
// ranked by count (top 20), themes by frequency.
type AggregatedResult struct {
	OverallSentiment   Sentiment  `json:"overall_sentiment"`
	TopEntities        []Entity   `json:"top_entities"`
	KeyThemes          []Theme    `json:"key_themes"`
	EmotionAnalysis    Emotions   `json:"emotion_analysis"`
	EngagementInsights Engagement `json:"engagement_insights"`
}

// TextAnalysis is the result of single-text analysis
type TextAnalysis struct {
	SentimentScore float64    `json:"sentiment_score"`
	SentimentLabel string     `json:"sentiment_label"`
	Entities       StringList `json:"entities"`
	Themes         StringList `json:"themes"`
	KeyPhrases     StringList `json:"key_phrases"`
}
