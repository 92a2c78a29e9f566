package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/ai"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/chain"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
)

// DefaultUsername owns dreams submitted without a user id.
const DefaultUsername = "default"

type Handler struct {
	store    store.Store
	analyzer *ai.Analyzer
	nfts     *ai.NFTGenerator
	insights *ai.Insights
	minter   chain.Minter
}

func New(s store.Store, analyzer *ai.Analyzer, nfts *ai.NFTGenerator, insights *ai.Insights, minter chain.Minter) *Handler {
	return &Handler{store: s, analyzer: analyzer, nfts: nfts, insights: insights, minter: minter}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/dreams", h.createDream)
	api.POST("/dreams/analyze", h.analyzeContent)
	api.GET("/dreams/user/:userId", h.listUserDreams)
	api.GET("/dreams/insights/user/:userId", h.dreamInsights)
	api.GET("/dreams/patterns/user/:userId", h.dreamPatterns)
	api.GET("/dreams/:id", h.getDream)
	api.PATCH("/dreams/:id", h.updateDream)
	api.POST("/dreams/:id/analyze", h.analyzeDream)
	api.GET("/dreams/:id/analysis", h.getAnalysis)
	api.POST("/dreams/:id/generate-nft", h.generateDreamNFT)
	api.POST("/dreams/:id/claim-reward", h.claimReward)

	api.POST("/nft/generate", h.generateNFT)
	api.GET("/nfts", h.listNFTs)
	api.GET("/nfts/user/:userId", h.listUserNFTs)
	api.GET("/nfts/:id", h.getNFT)

	api.GET("/users/:id", h.getUser)
	api.PATCH("/users/:id", h.updateUser)

	api.GET("/sleep-data/user/:userId", h.listSleepData)
	api.POST("/sleep-data", h.createSleepData)

	api.GET("/mining-rewards", h.listDefaultRewards)
	api.GET("/mining-rewards/user/:userId", h.listUserRewards)
	api.POST("/mining-rewards", h.createReward)

	api.GET("/collective/insights", h.collectiveInsights)
	api.GET("/sleep/optimization/user/:userId", h.sleepOptimization)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
}

// EnsureDefaultUser returns the fallback account, creating it on first use.
func EnsureDefaultUser(ctx context.Context, s store.UserRepository) (*models.User, error) {
	u, err := s.GetUserByUsername(ctx, DefaultUsername)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	display := "Dream User"
	u = &models.User{Username: DefaultUsername, DisplayName: &display}
	if err := s.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.GetUserByUsername(ctx, DefaultUsername)
		}
		return nil, err
	}
	return u, nil
}

// paramID reads a numeric path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
