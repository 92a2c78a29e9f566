package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
)

type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates or updates the schema.
func (g *Gorm) Migrate() error {
	return g.db.AutoMigrate(models.All()...)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrNotFound
	}
	return err
}

func (g *Gorm) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := g.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *Gorm) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := g.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	return translate(g.db.WithContext(ctx).Create(u).Error)
}

func (g *Gorm) UpdateUser(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}
		upd.Apply(&u)
		return tx.Model(&u).Select("display_name", "email", "wallet_address", "connected_tracker").Updates(&u).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *Gorm) GetDream(ctx context.Context, id uint) (*models.Dream, error) {
	var d models.Dream
	if err := g.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (g *Gorm) ListDreamsByUser(ctx context.Context, userID uint) ([]models.Dream, error) {
	var out []models.Dream
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm) CreateDream(ctx context.Context, d *models.Dream) error {
	return translate(g.db.WithContext(ctx).Create(d).Error)
}

func (g *Gorm) UpdateDream(ctx context.Context, id uint, upd models.DreamUpdate) (*models.Dream, error) {
	var d models.Dream
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, id).Error; err != nil {
			return err
		}
		upd.Apply(&d)
		return tx.Model(&d).
			Select("title", "content", "category", "mood_rating", "clarity_rating", "vividness_rating", "tags", "is_private").
			Updates(&d).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (g *Gorm) ListDreamsWithoutReward(ctx context.Context) ([]models.Dream, error) {
	var out []models.Dream
	err := g.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM mining_rewards r WHERE r.dream_id = dreams.id)").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm) GetDreamAnalysis(ctx context.Context, dreamID uint) (*models.DreamAnalysis, error) {
	var a models.DreamAnalysis
	if err := g.db.WithContext(ctx).Where("dream_id = ?", dreamID).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (g *Gorm) CreateDreamAnalysis(ctx context.Context, a *models.DreamAnalysis) error {
	return translate(g.db.WithContext(ctx).Create(a).Error)
}

func (g *Gorm) GetDreamNFT(ctx context.Context, id uint) (*models.DreamNFT, error) {
	var n models.DreamNFT
	if err := g.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (g *Gorm) ListDreamNFTsByUser(ctx context.Context, userID uint) ([]models.DreamNFT, error) {
	var out []models.DreamNFT
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm) ListDreamNFTs(ctx context.Context, limit int) ([]models.DreamNFT, error) {
	var out []models.DreamNFT
	q := g.db.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm) CreateDreamNFT(ctx context.Context, n *models.DreamNFT) error {
	return translate(g.db.WithContext(ctx).Create(n).Error)
}

func (g *Gorm) ListSleepDataByUser(ctx context.Context, userID uint) ([]models.SleepData, error) {
	var out []models.SleepData
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("date ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm) CreateSleepData(ctx context.Context, s *models.SleepData) error {
	return translate(g.db.WithContext(ctx).Create(s).Error)
}

func (g *Gorm) GetMiningReward(ctx context.Context, id uint) (*models.MiningReward, error) {
	var r models.MiningReward
	if err := g.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (g *Gorm) ListMiningRewardsByUser(ctx context.Context, userID uint) ([]models.MiningReward, error) {
	var out []models.MiningReward
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *Gorm) CreateMiningReward(ctx context.Context, r *models.MiningReward) error {
	if r.Currency == "" {
		r.Currency = models.CurrencyDream
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", r.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if r.DreamID != nil {
			if err := tx.Model(&models.Dream{}).Where("id = ?", *r.DreamID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", r.UserID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", r.Amount)).Error
	})
	return translate(err)
}

var _ Store = (*Gorm)(nil)
