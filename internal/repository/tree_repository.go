package repository

import (
	"context"
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type TreeRepository interface {
	Create(ctx context.Context, t *model.PlantedTree) error
	ListByUser(ctx context.Context, uid string, limit int) ([]model.PlantedTree, error)
	CountByUser(ctx context.Context, uid string) (int64, error)
	CountSince(ctx context.Context, uid string, since time.Time) (int64, error)
	DayKeys(ctx context.Context, uid string) ([]string, error)
	MonthKeys(ctx context.Context, uid string) ([]string, error)
	SetDB(db *gorm.DB)
}

type treeRepository struct {
	db *gorm.DB
}

func NewTreeRepository(db *gorm.DB) TreeRepository {
	return &treeRepository{db: db}
}

func (r *treeRepository) Create(ctx context.Context, t *model.PlantedTree) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *treeRepository) ListByUser(ctx context.Context, uid string, limit int) ([]model.PlantedTree, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []model.PlantedTree
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("planted_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *treeRepository) CountByUser(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PlantedTree{}).
		Where("uid = ?", uid).
		Count(&cnt).Error
	return cnt, err
}

func (r *treeRepository) CountSince(ctx context.Context, uid string, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PlantedTree{}).
		Where("uid = ? AND planted_at >= ?", uid, since).
		Count(&cnt).Error
	return cnt, err
}

// DayKeys returns the distinct activity days ("2006-01-02") for streaks.
func (r *treeRepository) DayKeys(ctx context.Context, uid string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&model.PlantedTree{}).
		Where("uid = ?", uid).
		Distinct("DATE_FORMAT(planted_at, '%Y-%m-%d')").
		Order("1").
		Pluck("DATE_FORMAT(planted_at, '%Y-%m-%d')", &keys).Error
	return keys, err
}

func (r *treeRepository) MonthKeys(ctx context.Context, uid string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&model.PlantedTree{}).
		Where("uid = ?", uid).
		Distinct("DATE_FORMAT(planted_at, '%Y-%m')").
		Order("1").
		Pluck("DATE_FORMAT(planted_at, '%Y-%m')", &keys).Error
	return keys, err
}

func (r *treeRepository) SetDB(db *gorm.DB) {
	r.db = db
}
