package rewards

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/metrics"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
)

// ForDream builds the dream_submission ledger entry for d.
func ForDream(d *models.Dream) *models.MiningReward {
	desc := fmt.Sprintf("Reward for submitting dream: %s", d.Title)
	dreamID := d.ID
	return &models.MiningReward{
		UserID:      d.UserID,
		DreamID:     &dreamID,
		Activity:    models.ActivityDreamSubmission,
		Amount:      decimal.NewFromInt(int64(Calculate(d.Category, d.VividnessRating, d.ClarityRating))),
		Currency:    models.CurrencyDream,
		Description: &desc,
	}
}

// Issue writes the reward for d and counts it.
func Issue(ctx context.Context, s store.RewardRepository, d *models.Dream) (*models.MiningReward, error) {
	r := ForDream(d)
	if err := s.CreateMiningReward(ctx, r); err != nil {
		return nil, err
	}
	metrics.RewardIssued(r.Activity)
	return r, nil
}

// Backfill creates a submission reward for every dream that has none and
// returns how many were written. A failing dream is logged and skipped, and a
// dream rewarded concurrently is not counted.
func Backfill(ctx context.Context, s store.Store) (int, error) {
	dreams, err := s.ListDreamsWithoutReward(ctx)
	if err != nil {
		return 0, fmt.Errorf("list unrewarded dreams: %w", err)
	}

	created := 0
	for i := range dreams {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		_, err := Issue(ctx, s, &dreams[i])
		if errors.Is(err, store.ErrAlreadyExists) {
			// rewarded since the listing, by a request or another run
			continue
		}
		if err != nil {
			logrus.WithError(err).WithField("dream_id", dreams[i].ID).Warn("reward backfill failed")
			continue
		}
		created++
	}
	if created > 0 {
		logrus.Infof("backfilled %d dream rewards", created)
	}
	return created, nil
}
