package repository

import (
	"context"
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type ChallengeRepository interface {
	ListActive(ctx context.Context, now time.Time) ([]model.Challenge, error)
	FindByID(ctx context.Context, id uint64) (*model.Challenge, error)
	Create(ctx context.Context, ch *model.Challenge) error
	// CreateCompletion returns ErrDuplicate when the (uid, challenge) pair
	// already exists; callers treat that as "already completed".
	CreateCompletion(ctx context.Context, c *model.ChallengeCompletion) error
	CompletionExists(ctx context.Context, uid string, challengeID uint64) (bool, error)
	CountCompletions(ctx context.Context, uid string) (int64, error)
	CompletionCounts(ctx context.Context, limit int) ([]UserCompletionCount, error)
	SetDB(db *gorm.DB)
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) ListActive(ctx context.Context, now time.Time) ([]model.Challenge, error) {
	var list []model.Challenge
	if err := r.db.WithContext(ctx).
		Where("starts_at <= ? AND ends_at > ?", now, now).
		Order("period, id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *challengeRepository) FindByID(ctx context.Context, id uint64) (*model.Challenge, error) {
	var ch model.Challenge
	if err := r.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *challengeRepository) Create(ctx context.Context, ch *model.Challenge) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

func (r *challengeRepository) CreateCompletion(ctx context.Context, c *model.ChallengeCompletion) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *challengeRepository) CompletionExists(ctx context.Context, uid string, challengeID uint64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.ChallengeCompletion{}).
		Where("uid = ? AND challenge_id = ?", uid, challengeID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *challengeRepository) CountCompletions(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.ChallengeCompletion{}).
		Where("uid = ?", uid).
		Count(&cnt).Error
	return cnt, err
}

// UserCompletionCount is one leaderboard input row.
type UserCompletionCount struct {
	UID   string
	Goals int64
}

func (r *challengeRepository) CompletionCounts(ctx context.Context, limit int) ([]UserCompletionCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []UserCompletionCount
	err := r.db.WithContext(ctx).
		Model(&model.ChallengeCompletion{}).
		Select("uid AS uid, COUNT(*) AS goals").
		Group("uid").
		Order("goals DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *challengeRepository) SetDB(db *gorm.DB) {
	r.db = db
}
