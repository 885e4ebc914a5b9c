package service

import (
	"sort"
	"strings"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/entity"
)

// topEntitiesLimit caps the finalized entity list
const topEntitiesLimit = 20

// aggregator accumulates chunk results into one running summary.
//
// Entities and themes merge by lower-cased trimmed name, so same-named
// items of different types collapse into one entry (first-seen type wins);
// acceptable for this domain. The average score is weighted by the number
// of comments each successfully parsed chunk analyzed; chunks that failed
// before parsing contribute nothing to the divisor.
type aggregator struct {
	sentiment entity.Sentiment

	// weighted-average state: sum of chunk average_score x chunk comment
	// count, divided only at finalization
	scoreSum    float64
	scoreWeight int

	entities    map[string]*entity.Entity
	entityOrder []string

	themes      map[string]*entity.Theme
	themeOrder  []string
	seenSamples map[string]map[string]bool

	emotions   entity.Emotions
	engagement entity.Engagement
}

func newAggregator() *aggregator {
	return &aggregator{
		entities:    make(map[string]*entity.Entity),
		themes:      make(map[string]*entity.Theme),
		seenSamples: make(map[string]map[string]bool),
	}
}

// merge folds one parsed chunk result into the running state. eligible is
// the number of non-empty comments that were sent in the chunk; it weights
// the chunk's average_score. A chunk without an overall_sentiment section
// still adds eligible to the divisor with a zero score term.
func (a *aggregator) merge(res *entity.ChunkResult, eligible int) {
	a.sentiment.Positive += res.OverallSentiment.Positive
	a.sentiment.Neutral += res.OverallSentiment.Neutral
	a.sentiment.Negative += res.OverallSentiment.Negative
	a.scoreSum += res.OverallSentiment.AverageScore * float64(eligible)
	a.scoreWeight += eligible

	for _, m := range res.TopEntities {
		if m.Name == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m.Name))
		if existing, ok := a.entities[key]; ok {
			existing.Count += m.Count
			continue
		}
		a.entities[key] = &entity.Entity{Name: m.Name, Count: m.Count, Type: m.Type}
		a.entityOrder = append(a.entityOrder, key)
	}

	for _, t := range res.KeyThemes {
		name := strings.TrimSpace(t.Theme)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		existing, ok := a.themes[key]
		if !ok {
			existing = &entity.Theme{
				Theme:          name,
				Sentiment:      t.Sentiment,
				SampleComments: []string{},
			}
			a.themes[key] = existing
			a.themeOrder = append(a.themeOrder, key)
			a.seenSamples[key] = make(map[string]bool)
			existing.Frequency = t.Occurrences()
		} else {
			existing.Frequency += t.Occurrences()
		}

		seen := a.seenSamples[key]
		for _, sample := range t.SampleComments {
			if seen[sample] {
				continue
			}
			seen[sample] = true
			existing.SampleComments = append(existing.SampleComments, sample)
		}
	}

	a.emotions.Joy += res.EmotionAnalysis.Joy
	a.emotions.Anger += res.EmotionAnalysis.Anger
	a.emotions.Sadness += res.EmotionAnalysis.Sadness
	a.emotions.Fear += res.EmotionAnalysis.Fear
	a.emotions.Surprise += res.EmotionAnalysis.Surprise
	a.emotions.Trust += res.EmotionAnalysis.Trust
	a.emotions.Anticipation += res.EmotionAnalysis.Anticipation

	a.engagement.ConstructiveFeedback += res.EngagementInsights.ConstructiveFeedback
	a.engagement.Criticism += res.EngagementInsights.Criticism
	a.engagement.Suggestions += res.EngagementInsights.Suggestions
	a.engagement.Questions += res.EngagementInsights.Questions
	a.engagement.Praise += res.EngagementInsights.Praise
}

// finalize computes the weighted average, ranks entities and themes, and
// returns the immutable result. Entities sort by count descending (stable,
// truncated to 20); themes sort by frequency descending (stable).
func (a *aggregator) finalize() *entity.AggregatedResult {
	out := &entity.AggregatedResult{
		OverallSentiment:   a.sentiment,
		TopEntities:        []entity.Entity{},
		KeyThemes:          []entity.Theme{},
		EmotionAnalysis:    a.emotions,
		EngagementInsights: a.engagement,
	}

	if a.scoreWeight > 0 {
		out.OverallSentiment.AverageScore = a.scoreSum / float64(a.scoreWeight)
	}

	for _, key := range a.entityOrder {
		out.TopEntities = append(out.TopEntities, *a.entities[key])
	}
	sort.SliceStable(out.TopEntities, func(i, j int) bool {
		return out.TopEntities[i].Count > out.TopEntities[j].Count
	})
	if len(out.TopEntities) > topEntitiesLimit {
		out.TopEntities = out.TopEntities[:topEntitiesLimit]
	}

	for _, key := range a.themeOrder {
		out.KeyThemes = append(out.KeyThemes, *a.themes[key])
	}
	sort.SliceStable(out.KeyThemes, func(i, j int) bool {
		return out.KeyThemes[i].Frequency > out.KeyThemes[j].Frequency
	})

	return out
}
