package rewards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
)

func seed(t *testing.T, s *store.Memory, category string, vividness, clarity int) *models.Dream {
	t.Helper()
	ctx := context.Background()
	u, err := s.GetUserByUsername(ctx, "dreamer")
	if err != nil {
		u = &models.User{Username: "dreamer"}
		require.NoError(t, s.CreateUser(ctx, u))
	}
	d := &models.Dream{UserID: u.ID, Title: "Flight", Content: "I flew", Category: category, VividnessRating: vividness, ClarityRating: clarity}
	require.NoError(t, s.CreateDream(ctx, d))
	return d
}

func TestForDream(t *testing.T) {
	r := ForDream(&models.Dream{ID: 4, UserID: 2, Title: "Sky", Category: "lucid", VividnessRating: 8, ClarityRating: 7})
	assert.Equal(t, uint(2), r.UserID)
	require.NotNil(t, r.DreamID)
	assert.Equal(t, uint(4), *r.DreamID)
	assert.Equal(t, models.ActivityDreamSubmission, r.Activity)
	assert.Equal(t, "43", r.Amount.String())
	assert.Equal(t, "Reward for submitting dream: Sky", *r.Description)
}

func TestBackfillCreatesMissingRewardsOnce(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	first := seed(t, s, "prophetic", 10, 10)
	seed(t, s, "unknown", 0, 0)

	_, err := Issue(ctx, s, first)
	require.NoError(t, err)

	n, err := Backfill(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = Backfill(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	u, err := s.GetUserByUsername(ctx, "dreamer")
	require.NoError(t, err)
	assert.Equal(t, "160", u.TotalEarnings.String())

	rs, err := s.ListMiningRewardsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, rs, 2)
}

// staleStore lists dreams as unrewarded even after they are rewarded, like a
// second backfill that listed before the first one wrote.
type staleStore struct {
	*store.Memory
	pending []models.Dream
}

func (s staleStore) ListDreamsWithoutReward(context.Context) ([]models.Dream, error) {
	return s.pending, nil
}

func TestBackfillSkipsDreamsRewardedMeanwhile(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	d := seed(t, mem, "lucid", 8, 7)
	_, err := Issue(ctx, mem, d)
	require.NoError(t, err)

	n, err := Backfill(ctx, staleStore{Memory: mem, pending: []models.Dream{*d}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = Issue(ctx, mem, d)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	u, err := mem.GetUserByUsername(ctx, "dreamer")
	require.NoError(t, err)
	assert.Equal(t, "43", u.TotalEarnings.String())
}

func TestBackfillStopsOnCancelledContext(t *testing.T) {
	s := store.NewMemory()
	seed(t, s, "healing", 1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Backfill(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}

func TestStartScheduler(t *testing.T) {
	s := store.NewMemory()

	stop, err := StartScheduler(context.Background(), s, "")
	require.NoError(t, err)
	assert.Nil(t, stop)

	_, err = StartScheduler(context.Background(), s, "not a schedule")
	assert.Error(t, err)

	stop, err = StartScheduler(context.Background(), s, "@every 1h")
	require.NoError(t, err)
	require.NotNil(t, stop)
	stop()
}
