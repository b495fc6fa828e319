package repository

import (
	"context"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type PreferenceRepository interface {
	Get(ctx context.Context, uid string) (*model.NotificationPreferences, error)
	Update(ctx context.Context, p *model.NotificationPreferences) error
	SetDB(db *gorm.DB)
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Get creates the row lazily with defaults on first read.
func (r *preferenceRepository) Get(ctx context.Context, uid string) (*model.NotificationPreferences, error) {
	var p model.NotificationPreferences
	defaults := model.NotificationPreferences{
		UID:                 uid,
		AchievementsEnabled: true,
		LeaderboardEnabled:  true,
		ChallengesEnabled:   true,
		StreakEnabled:       true,
		CommunityEnabled:    true,
		SoundEnabled:        true,
	}
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Attrs(defaults).
		FirstOrCreate(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepository) Update(ctx context.Context, p *model.NotificationPreferences) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *preferenceRepository) SetDB(db *gorm.DB) {
	r.db = db
}
