package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
)

func seedDream(t *testing.T, s *Memory) (*models.User, *models.Dream) {
	t.Helper()
	ctx := context.Background()
	u := &models.User{Username: "dreamer"}
	require.NoError(t, s.CreateUser(ctx, u))
	d := &models.Dream{UserID: u.ID, Title: "Flying", Content: "I flew over the sea", Category: "lucid", Tags: []string{"sky"}}
	require.NoError(t, s.CreateDream(ctx, d))
	return u, d
}

func TestMemoryUsernameIsUnique(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "a"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &models.User{Username: "a"}), ErrAlreadyExists)

	u, err := s.GetUserByUsername(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)

	_, err = s.GetUserByUsername(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDreamRequiresUser(t *testing.T) {
	s := NewMemory()
	err := s.CreateDream(context.Background(), &models.Dream{UserID: 42, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryOneAnalysisPerDream(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	_, d := seedDream(t, s)

	require.NoError(t, s.CreateDreamAnalysis(ctx, &models.DreamAnalysis{DreamID: d.ID, Interpretation: "first"}))
	err := s.CreateDreamAnalysis(ctx, &models.DreamAnalysis{DreamID: d.ID, Interpretation: "second"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	a, err := s.GetDreamAnalysis(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", a.Interpretation)
}

func TestMemoryRewardCreditsEarnings(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	u, d := seedDream(t, s)

	r := &models.MiningReward{UserID: u.ID, DreamID: &d.ID, Activity: models.ActivityDreamSubmission, Amount: decimal.NewFromInt(43)}
	require.NoError(t, s.CreateMiningReward(ctx, r))
	require.NoError(t, s.CreateMiningReward(ctx, &models.MiningReward{UserID: u.ID, Activity: "bonus", Amount: decimal.RequireFromString("2.5")}))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalEarnings.Equal(decimal.RequireFromString("45.5")), got.TotalEarnings.String())
	assert.Equal(t, models.CurrencyDream, r.Currency)

	list, err := s.ListMiningRewardsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemoryRewardReferencesMustExist(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	u, _ := seedDream(t, s)
	missing := uint(99)

	assert.ErrorIs(t, s.CreateMiningReward(ctx, &models.MiningReward{UserID: 99, Amount: decimal.NewFromInt(1)}), ErrNotFound)
	assert.ErrorIs(t, s.CreateMiningReward(ctx, &models.MiningReward{UserID: u.ID, DreamID: &missing, Amount: decimal.NewFromInt(1)}), ErrNotFound)
}

func TestMemoryOneRewardPerDreamActivity(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	u, d := seedDream(t, s)
	submission := func() *models.MiningReward {
		return &models.MiningReward{UserID: u.ID, DreamID: &d.ID, Activity: models.ActivityDreamSubmission, Amount: decimal.NewFromInt(43)}
	}

	require.NoError(t, s.CreateMiningReward(ctx, submission()))
	assert.ErrorIs(t, s.CreateMiningReward(ctx, submission()), ErrAlreadyExists)
	require.NoError(t, s.CreateMiningReward(ctx, &models.MiningReward{UserID: u.ID, DreamID: &d.ID, Activity: "nft_mint", Amount: decimal.NewFromInt(5)}))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "48", got.TotalEarnings.String())
}

func TestMemoryDreamsWithoutReward(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	u, d := seedDream(t, s)
	other := &models.Dream{UserID: u.ID, Title: "Falling", Content: "down", Category: "nightmare"}
	require.NoError(t, s.CreateDream(ctx, other))
	require.NoError(t, s.CreateMiningReward(ctx, &models.MiningReward{UserID: u.ID, DreamID: &d.ID, Amount: decimal.NewFromInt(1)}))

	pending, err := s.ListDreamsWithoutReward(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, other.ID, pending[0].ID)
}

func TestMemoryReturnsCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	_, d := seedDream(t, s)

	got, err := s.GetDream(ctx, d.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"
	got.Title = "mutated"

	again, err := s.GetDream(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flying", again.Title)
	assert.Equal(t, "sky", again.Tags[0])
}

func TestMemoryUpdateDream(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	_, d := seedDream(t, s)
	content := "I flew over mountains"

	updated, err := s.UpdateDream(ctx, d.ID, models.DreamUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, "Flying", updated.Title)

	_, err = s.UpdateDream(ctx, 999, models.DreamUpdate{Content: &content})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListNFTsLimit(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	u, d := seedDream(t, s)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateDreamNFT(ctx, &models.DreamNFT{DreamID: d.ID, UserID: u.ID, Title: "art"}))
	}
	all, err := s.ListDreamNFTs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	two, err := s.ListDreamNFTs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, uint(1), two[0].ID)
}
