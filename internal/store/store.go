// Package store persists users, dreams and everything derived from them.
package store

import (
	"context"
	"errors"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

type UserRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error)
}

type DreamRepository interface {
	GetDream(ctx context.Context, id uint) (*models.Dream, error)
	ListDreamsByUser(ctx context.Context, userID uint) ([]models.Dream, error)
	CreateDream(ctx context.Context, d *models.Dream) error
	UpdateDream(ctx context.Context, id uint, upd models.DreamUpdate) (*models.Dream, error)
	// ListDreamsWithoutReward returns dreams that have no mining reward attached.
	ListDreamsWithoutReward(ctx context.Context) ([]models.Dream, error)
}

type AnalysisRepository interface {
	GetDreamAnalysis(ctx context.Context, dreamID uint) (*models.DreamAnalysis, error)
	// CreateDreamAnalysis fails with ErrAlreadyExists when the dream is already analysed.
	CreateDreamAnalysis(ctx context.Context, a *models.DreamAnalysis) error
}

type NFTRepository interface {
	GetDreamNFT(ctx context.Context, id uint) (*models.DreamNFT, error)
	ListDreamNFTsByUser(ctx context.Context, userID uint) ([]models.DreamNFT, error)
	// ListDreamNFTs returns NFTs in id order; limit <= 0 means no limit.
	ListDreamNFTs(ctx context.Context, limit int) ([]models.DreamNFT, error)
	CreateDreamNFT(ctx context.Context, n *models.DreamNFT) error
}

type SleepRepository interface {
	ListSleepDataByUser(ctx context.Context, userID uint) ([]models.SleepData, error)
	CreateSleepData(ctx context.Context, s *models.SleepData) error
}

type RewardRepository interface {
	GetMiningReward(ctx context.Context, id uint) (*models.MiningReward, error)
	ListMiningRewardsByUser(ctx context.Context, userID uint) ([]models.MiningReward, error)
	// CreateMiningReward records the reward and credits the user's total earnings atomically.
	CreateMiningReward(ctx context.Context, r *models.MiningReward) error
}

type Store interface {
	UserRepository
	DreamRepository
	AnalysisRepository
	NFTRepository
	SleepRepository
	RewardRepository
}
