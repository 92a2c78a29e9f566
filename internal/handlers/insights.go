package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/ai"
)

const collectiveNFTSample = 100

func (h *Handler) dreamInsights(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	dreams, err := h.store.ListDreamsByUser(ctx, userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	texts := make([]string, 0, len(dreams))
	for _, d := range dreams {
		texts = append(texts, d.Content)
	}

	out, err := h.insights.DreamInsights(ctx, texts)
	if err != nil {
		respondError(c, err, "Insights")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) dreamPatterns(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	dreams, err := h.store.ListDreamsByUser(ctx, userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	samples := make([]ai.DreamSample, 0, len(dreams))
	for _, d := range dreams {
		if d.RecordedAt.IsZero() {
			continue
		}
		samples = append(samples, ai.DreamSample{Content: d.Content, Category: d.Category, RecordedAt: d.RecordedAt})
	}

	out, err := h.insights.DreamPatterns(ctx, samples)
	if err != nil {
		respondError(c, err, "Patterns")
		return
	}
	c.JSON(http.StatusOK, out)
}

// collectiveInsights samples the dreams behind minted artwork, the public
// part of the dream pool.
func (h *Handler) collectiveInsights(c *gin.Context) {
	ctx := c.Request.Context()
	nfts, err := h.store.ListDreamNFTs(ctx, collectiveNFTSample)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}

	samples := make([]ai.DreamSample, 0, len(nfts))
	for _, n := range nfts {
		s := ai.DreamSample{Category: "unknown", Emotions: []string{}}
		if d, err := h.store.GetDream(ctx, n.DreamID); err == nil {
			s.Content, s.Category = d.Content, d.Category
		}
		if a, err := h.store.GetDreamAnalysis(ctx, n.DreamID); err == nil {
			s.Emotions = a.Emotions
		}
		samples = append(samples, s)
	}

	out, err := h.insights.CollectiveInsights(ctx, samples)
	if err != nil {
		respondError(c, err, "Collective insights")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) sleepOptimization(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	rows, err := h.store.ListSleepDataByUser(ctx, userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	samples := make([]ai.SleepSample, 0, len(rows))
	for _, r := range rows {
		if r.SleepQuality == nil || r.DreamFrequency == nil {
			continue
		}
		samples = append(samples, ai.SleepSample{Date: r.Date, SleepQuality: *r.SleepQuality, DreamFrequency: *r.DreamFrequency})
	}

	out, err := h.insights.SleepRecommendations(ctx, samples)
	if err != nil {
		respondError(c, err, "Recommendations")
		return
	}
	c.JSON(http.StatusOK, out)
}
