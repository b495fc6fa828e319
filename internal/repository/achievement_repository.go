package repository

import (
	"context"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type AchievementRepository interface {
	Create(ctx context.Context, a *model.Achievement) error
	ListByUser(ctx context.Context, uid string, limit int) ([]model.Achievement, error)
	SumSeedsEarned(ctx context.Context, uid string) (int64, error)
	SetDB(db *gorm.DB)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, a *model.Achievement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *achievementRepository) ListByUser(ctx context.Context, uid string, limit int) ([]model.Achievement, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []model.Achievement
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *achievementRepository) SumSeedsEarned(ctx context.Context, uid string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.Achievement{}).
		Where("uid = ?", uid).
		Select("COALESCE(SUM(seeds_earned), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *achievementRepository) SetDB(db *gorm.DB) {
	r.db = db
}
