package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/metrics"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/rewards"
)

const defaultRewardRarity = 75

type enrichedReward struct {
	models.MiningReward
	DreamTitle   string     `json:"dreamTitle,omitempty"`
	Category     string     `json:"category,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	TokensEarned *float64   `json:"tokensEarned,omitempty"`
	RarityScore  *int       `json:"rarityScore,omitempty"`
}

// listDefaultRewards serves the default user's ledger, backfilling it when
// empty and decorating dream rewards with their dream details.
func (h *Handler) listDefaultRewards(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := EnsureDefaultUser(ctx, h.store)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	list, err := h.store.ListMiningRewardsByUser(ctx, u.ID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	if len(list) == 0 {
		if _, err := rewards.Backfill(ctx, h.store); err != nil {
			logrus.WithError(err).Warn("reward backfill failed")
		}
		if list, err = h.store.ListMiningRewardsByUser(ctx, u.ID); err != nil {
			respondError(c, err, "User")
			return
		}
	}

	out := make([]enrichedReward, 0, len(list))
	for _, r := range list {
		out = append(out, h.enrich(ctx, r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) enrich(ctx context.Context, r models.MiningReward) enrichedReward {
	e := enrichedReward{MiningReward: r}
	if r.DreamID == nil {
		return e
	}

	tokens := r.Amount.InexactFloat64()
	rarity := defaultRewardRarity
	submitted := r.CreatedAt
	e.TokensEarned, e.RarityScore, e.SubmittedAt = &tokens, &rarity, &submitted
	e.DreamTitle, e.Category = "Unknown Dream", "unknown"

	if d, err := h.store.GetDream(ctx, *r.DreamID); err == nil {
		e.DreamTitle, e.Category = d.Title, d.Category
		if !d.RecordedAt.IsZero() {
			submitted = d.RecordedAt
		}
	}
	if a, err := h.store.GetDreamAnalysis(ctx, *r.DreamID); err == nil {
		rarity = a.RarityScore
	}
	return e
}

func (h *Handler) listUserRewards(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	list, err := h.store.ListMiningRewardsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	if list == nil {
		list = []models.MiningReward{}
	}
	c.JSON(http.StatusOK, list)
}

type createRewardReq struct {
	UserID      uint            `json:"userId" binding:"required"`
	DreamID     *uint           `json:"dreamId"`
	Activity    string          `json:"activity" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

func (h *Handler) createReward(c *gin.Context) {
	var req createRewardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid mining reward", err)
		return
	}
	if !req.Amount.IsPositive() {
		badRequest(c, "Invalid mining reward", errors.New("amount must be positive"))
		return
	}

	r := &models.MiningReward{
		UserID:      req.UserID,
		DreamID:     req.DreamID,
		Activity:    req.Activity,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	}
	if err := h.store.CreateMiningReward(c.Request.Context(), r); err != nil {
		respondError(c, err, "User or dream")
		return
	}
	metrics.RewardIssued(r.Activity)
	c.JSON(http.StatusOK, r)
}

type claimReq struct {
	WalletAddress string          `json:"walletAddress"`
	Amount        decimal.Decimal `json:"amount"`
}

// claimReward settles a ledger entry to a wallet. The :id segment is the
// mining reward id.
func (h *Handler) claimReward(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req claimReq
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" || req.Amount.IsZero() {
		badRequest(c, "Wallet address and amount required", nil)
		return
	}
	ctx := c.Request.Context()

	reward, err := h.store.GetMiningReward(ctx, id)
	if err != nil {
		respondError(c, err, "Reward")
		return
	}
	if req.Amount.GreaterThan(reward.Amount) {
		badRequest(c, "Claim exceeds reward amount",
			fmt.Errorf("reward %d holds %s %s", reward.ID, reward.Amount, reward.Currency))
		return
	}

	receipt, err := h.minter.Mint(ctx, req.WalletAddress, req.Amount)
	if err != nil {
		respondError(c, err, "Reward")
		return
	}
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"reward_id":  reward.ID,
		"wallet":     receipt.WalletAddress,
		"tx":         receipt.TransactionHash,
	}).Infof("processed claim of %s %s", receipt.Amount, reward.Currency)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"rewardId":        reward.ID,
		"amount":          receipt.Amount,
		"walletAddress":   receipt.WalletAddress,
		"transactionHash": receipt.TransactionHash,
		"message":         fmt.Sprintf("%s %s tokens minted to %s", receipt.Amount, reward.Currency, receipt.WalletAddress),
		"blockExplorer":   receipt.ExplorerURL,
		"simulated":       receipt.Simulated,
	})
}
