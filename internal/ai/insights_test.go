package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDreamInsightsCapsAtFive(t *testing.T) {
	m := newFakeModel()
	m.fallback = `["a","b","c","d","e","f"]`

	out, err := NewInsights(m).DreamInsights(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, out)
	assert.Contains(t, m.calls[0].User, "one\n\n---\n\ntwo")
}

func TestDreamInsightsEmptyInputSkipsCall(t *testing.T) {
	m := newFakeModel()
	out, err := NewInsights(m).DreamInsights(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, m.callCount())
}

func TestInsightsDegradeOnUpstreamFailure(t *testing.T) {
	m := newFakeModel()
	m.failOn = "You are"
	in := NewInsights(m)

	patterns, err := in.DreamPatterns(context.Background(), []DreamSample{{Content: "c", Category: "lucid", RecordedAt: time.Now()}})
	require.NoError(t, err)
	assert.Empty(t, patterns.RecurringSymbols)
	assert.Equal(t, 0, patterns.LucidityFrequency)

	collective, err := in.CollectiveInsights(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", collective.EmotionalClimate)

	recs, err := in.SleepRecommendations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestInsightsRequireConfiguration(t *testing.T) {
	m := newFakeModel()
	m.configured = false
	in := NewInsights(m)

	_, err := in.DreamInsights(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = in.CollectiveInsights(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDreamPatternsParsesAndClamps(t *testing.T) {
	m := newFakeModel()
	m.fallback = `{"recurring_symbols":["water"],"emotional_trends":["calm"],"sleep_cycle_correlations":["rem heavy",{"hour":3}],"lucidity_frequency":130,"recommendations":["journal"]}`

	out, err := NewInsights(m).DreamPatterns(context.Background(), []DreamSample{
		{Content: "sea", Category: "healing", RecordedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"water"}, out.RecurringSymbols)
	assert.Equal(t, 100, out.LucidityFrequency)
	assert.Len(t, out.SleepCycleCorrelations, 2)
	assert.Contains(t, m.calls[0].User, "2024-05-01")
}

func TestCollectiveInsightsDefaultsClimate(t *testing.T) {
	m := newFakeModel()
	m.fallback = `{"trending_symbols":[{"symbol":"moon","frequency":12,"meaning":"cycles"}]}`

	out, err := NewInsights(m).CollectiveInsights(context.Background(), make([]DreamSample, 80))
	require.NoError(t, err)
	assert.Equal(t, "Neutral", out.EmotionalClimate)
	require.Len(t, out.TrendingSymbols, 1)
	assert.Equal(t, 12.0, out.TrendingSymbols[0].Frequency)
	assert.Contains(t, m.calls[0].User, "from 80 dreamers")
}

func TestSleepRecommendationsSendsLatestThirty(t *testing.T) {
	m := newFakeModel()
	m.fallback = `["sleep at 22:30"]`
	samples := make([]SleepSample, 40)
	for i := range samples {
		samples[i] = SleepSample{SleepQuality: i}
	}

	out, err := NewInsights(m).SleepRecommendations(context.Background(), samples)
	require.NoError(t, err)
	assert.Equal(t, []string{"sleep at 22:30"}, out)
	assert.NotContains(t, m.calls[0].User, `"sleepQuality":9,`)
	assert.Contains(t, m.calls[0].User, `"sleepQuality":39,`)
}
