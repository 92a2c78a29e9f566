package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/ai"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/chain"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
)

const notConfiguredMessage = "AI service not configured. Please provide API keys."

// aiFailureMessages is what clients see when a model call fails, keyed by
// subject. Provider detail only goes to the log.
var aiFailureMessages = map[string]string{
	"Analysis":            "Failed to analyze dream",
	"NFT":                 "Failed to generate NFT",
	"Insights":            "Failed to generate dream insights",
	"Patterns":            "Failed to analyze dream patterns",
	"Collective insights": "Failed to generate collective insights",
	"Recommendations":     "Failed to generate sleep optimization",
}

// respondError maps domain errors onto status codes. subject names the
// record involved, e.g. "Dream", for not-found and conflict messages.
func respondError(c *gin.Context, err error, subject string) {
	log := logrus.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"route":      c.FullPath(),
	})

	var (
		analysisErr   *ai.AnalysisError
		generationErr *ai.GenerationError
		upstreamErr   *ai.UpstreamError
	)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		log.Warn("ai provider not configured")
		c.JSON(http.StatusBadRequest, gin.H{"error": notConfiguredMessage})
	case errors.Is(err, ai.ErrEmptyContent),
		errors.Is(err, chain.ErrInvalidWallet),
		errors.Is(err, chain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": subject + " not found"})
	case errors.Is(err, store.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": subject + " already exists"})
	case errors.As(err, &analysisErr),
		errors.As(err, &generationErr),
		errors.As(err, &upstreamErr),
		errors.Is(err, ai.ErrMalformedResponse):
		log.Error("ai request failed")
		msg, ok := aiFailureMessages[subject]
		if !ok {
			msg = "AI request failed"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	default:
		log.Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

func badRequest(c *gin.Context, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
