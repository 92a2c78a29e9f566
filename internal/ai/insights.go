package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	maxInsights         = 5
	maxCollectiveDreams = 50
	maxSleepSamples     = 30
	climateWhenMissing  = "Neutral"
	climateOnFailure    = "Unknown"
)

// Insights derives aggregate readings from many dreams. Upstream or parse
// failures degrade to empty results; only missing credentials is an error.
type Insights struct {
	model TextModel
}

func NewInsights(model TextModel) *Insights {
	return &Insights{model: model}
}

type DreamSample struct {
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	RecordedAt time.Time `json:"-"`
	Emotions   []string  `json:"emotions,omitempty"`
}

type SleepSample struct {
	Date           time.Time `json:"date"`
	SleepQuality   int       `json:"sleepQuality"`
	DreamFrequency int       `json:"dreamFrequency"`
}

type DreamPatterns struct {
	RecurringSymbols       []string `json:"recurring_symbols"`
	EmotionalTrends        []string `json:"emotional_trends"`
	SleepCycleCorrelations []any    `json:"sleep_cycle_correlations"`
	LucidityFrequency      int      `json:"lucidity_frequency"`
	Recommendations        []string `json:"recommendations"`
}

type TrendingSymbol struct {
	Symbol    string  `json:"symbol"`
	Frequency float64 `json:"frequency"`
	Meaning   string  `json:"meaning"`
}

type CollectiveInsights struct {
	TrendingSymbols  []TrendingSymbol `json:"trending_symbols"`
	EmotionalClimate string           `json:"emotional_climate"`
	PredictiveThemes []string         `json:"predictive_themes"`
	MarketIndicators []string         `json:"market_indicators"`
}

func (in *Insights) ready() error {
	if !in.model.Configured() {
		return ErrNotConfigured
	}
	return nil
}

// DreamInsights returns at most five observations across the given dream texts.
func (in *Insights) DreamInsights(ctx context.Context, texts []string) ([]string, error) {
	if err := in.ready(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return []string{}, nil
	}

	raw, err := in.model.Complete(ctx, Prompt{
		System:    "You are a dream pattern analyst. Study several dreams together, find patterns and recurring themes, and describe what they say about the dreamer's subconscious.\n\nReturn a JSON array of insight strings (at most 5).",
		User:      "Analyze these dreams for patterns and insights: " + strings.Join(texts, "\n\n---\n\n"),
		MaxTokens: 1000,
	})
	if err != nil {
		logrus.WithError(err).Warn("dream insights failed")
		return []string{}, nil
	}
	arr, err := parseArray(raw)
	if err != nil {
		logrus.WithError(err).Warn("dream insights unreadable")
		return []string{}, nil
	}
	out := stringsOf(arr)
	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out, nil
}

// DreamPatterns looks for recurring symbols and emotional trends over time.
func (in *Insights) DreamPatterns(ctx context.Context, dreams []DreamSample) (*DreamPatterns, error) {
	if err := in.ready(); err != nil {
		return nil, err
	}
	empty := &DreamPatterns{
		RecurringSymbols:       []string{},
		EmotionalTrends:        []string{},
		SleepCycleCorrelations: []any{},
		Recommendations:        []string{},
	}

	type row struct {
		Content  string `json:"content"`
		Category string `json:"category"`
		Date     string `json:"date"`
	}
	rows := make([]row, 0, len(dreams))
	for _, d := range dreams {
		rows = append(rows, row{Content: d.Content, Category: d.Category, Date: d.RecordedAt.Format("2006-01-02")})
	}
	payload, _ := json.Marshal(rows)

	raw, err := in.model.Complete(ctx, Prompt{
		System: `You are Dr. Vera Pattern, studying dream records for patterns. Return JSON with these keys:
- recurring_symbols: symbols that appear often
- emotional_trends: emotional patterns over time
- sleep_cycle_correlations: observations about sleep patterns
- lucidity_frequency: number 0-100 for how often dreams are lucid
- recommendations: practical recommendations for the dreamer`,
		User:      fmt.Sprintf("Analyze these %d dreams for patterns: %s", len(dreams), payload),
		MaxTokens: 1500,
	})
	if err != nil {
		logrus.WithError(err).Warn("dream pattern analysis failed")
		return empty, nil
	}
	obj, err := parseObject(raw)
	if err != nil {
		logrus.WithError(err).Warn("dream pattern analysis unreadable")
		return empty, nil
	}

	out := &DreamPatterns{
		RecurringSymbols:       stringsOf(obj.Get("recurring_symbols")),
		EmotionalTrends:        stringsOf(obj.Get("emotional_trends")),
		SleepCycleCorrelations: []any{},
		LucidityFrequency:      score(obj.Get("lucidity_frequency"), 0),
		Recommendations:        stringsOf(obj.Get("recommendations")),
	}
	for _, c := range obj.Get("sleep_cycle_correlations").Array() {
		out.SleepCycleCorrelations = append(out.SleepCycleCorrelations, c.Value())
	}
	return out, nil
}

// CollectiveInsights reads societal signals from many dreamers; only the first 50 dreams are sent.
func (in *Insights) CollectiveInsights(ctx context.Context, dreams []DreamSample) (*CollectiveInsights, error) {
	if err := in.ready(); err != nil {
		return nil, err
	}
	failed := &CollectiveInsights{
		TrendingSymbols:  []TrendingSymbol{},
		EmotionalClimate: climateOnFailure,
		PredictiveThemes: []string{},
		MarketIndicators: []string{},
	}

	sample := dreams
	if len(sample) > maxCollectiveDreams {
		sample = sample[:maxCollectiveDreams]
	}
	payload, _ := json.Marshal(sample)

	raw, err := in.model.Complete(ctx, Prompt{
		System: `You are Oracle, reading collective dream consciousness for societal insight. Return JSON with these keys:
- trending_symbols: array of objects with "symbol", "frequency" and "meaning"
- emotional_climate: string describing the overall emotional state
- predictive_themes: emerging themes that may predict future trends
- market_indicators: economic or market signals found in the dreams`,
		User:      fmt.Sprintf("Analyze collective dream data from %d dreamers for societal insights: %s", len(dreams), payload),
		MaxTokens: 1500,
	})
	if err != nil {
		logrus.WithError(err).Warn("collective insights failed")
		return failed, nil
	}
	obj, err := parseObject(raw)
	if err != nil {
		logrus.WithError(err).Warn("collective insights unreadable")
		return failed, nil
	}

	out := &CollectiveInsights{
		TrendingSymbols:  []TrendingSymbol{},
		EmotionalClimate: stringOr(obj.Get("emotional_climate"), climateWhenMissing),
		PredictiveThemes: stringsOf(obj.Get("predictive_themes")),
		MarketIndicators: stringsOf(obj.Get("market_indicators")),
	}
	for _, s := range obj.Get("trending_symbols").Array() {
		if !s.IsObject() {
			continue
		}
		out.TrendingSymbols = append(out.TrendingSymbols, TrendingSymbol{
			Symbol:    s.Get("symbol").String(),
			Frequency: s.Get("frequency").Float(),
			Meaning:   s.Get("meaning").String(),
		})
	}
	return out, nil
}

// SleepRecommendations suggests sleep timing for vivid dreams from the latest 30 samples.
func (in *Insights) SleepRecommendations(ctx context.Context, samples []SleepSample) ([]string, error) {
	if err := in.ready(); err != nil {
		return nil, err
	}
	if len(samples) > maxSleepSamples {
		samples = samples[len(samples)-maxSleepSamples:]
	}
	payload, _ := json.Marshal(samples)

	raw, err := in.model.Complete(ctx, Prompt{
		System:    "You are Astral, the Lucidity Coach. Study the sleep data and recommend sleep timing that favours vivid dreams and lucidity. Return a JSON array of recommendation strings.",
		User:      "Analyze this sleep data for optimal dream timing: " + string(payload),
		MaxTokens: 800,
	})
	if err != nil {
		logrus.WithError(err).Warn("sleep optimization failed")
		return []string{}, nil
	}
	arr, err := parseArray(raw)
	if err != nil {
		logrus.WithError(err).Warn("sleep optimization unreadable")
		return []string{}, nil
	}
	return stringsOf(arr), nil
}
