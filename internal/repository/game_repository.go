package repository

import (
	"context"
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, g *model.GameSession) error
	CountSince(ctx context.Context, uid string, kind model.GameKind, since time.Time) (int64, error)
	CountAllSince(ctx context.Context, uid string, since time.Time) (int64, error)
	BestScoreSince(ctx context.Context, uid string, kind model.GameKind, since time.Time) (int64, error)
	CountByUser(ctx context.Context, uid string, kind model.GameKind) (int64, error)
	SetDB(db *gorm.DB)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, g *model.GameSession) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gameRepository) CountSince(ctx context.Context, uid string, kind model.GameKind, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.GameSession{}).
		Where("uid = ? AND kind = ? AND created_at >= ?", uid, kind, since).
		Count(&cnt).Error
	return cnt, err
}

func (r *gameRepository) CountAllSince(ctx context.Context, uid string, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.GameSession{}).
		Where("uid = ? AND created_at >= ?", uid, since).
		Count(&cnt).Error
	return cnt, err
}

func (r *gameRepository) BestScoreSince(ctx context.Context, uid string, kind model.GameKind, since time.Time) (int64, error) {
	var best int64
	err := r.db.WithContext(ctx).
		Model(&model.GameSession{}).
		Where("uid = ? AND kind = ? AND created_at >= ?", uid, kind, since).
		Select("COALESCE(MAX(score), 0)").
		Scan(&best).Error
	return best, err
}

func (r *gameRepository) CountByUser(ctx context.Context, uid string, kind model.GameKind) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.GameSession{}).
		Where("uid = ? AND kind = ?", uid, kind).
		Count(&cnt).Error
	return cnt, err
}

func (r *gameRepository) SetDB(db *gorm.DB) {
	r.db = db
}
