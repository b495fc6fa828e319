package repository

import (
	"context"
	"errors"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type BadgeRepository interface {
	// CreateIfAbsent inserts a badge and reports whether it was new; the
	// (uid, name) unique index absorbs concurrent grants.
	CreateIfAbsent(ctx context.Context, b *model.Badge) (bool, error)
	ListByUser(ctx context.Context, uid string) ([]model.Badge, error)
	NamesByUser(ctx context.Context, uid string) (map[string]bool, error)
	SetDB(db *gorm.DB)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) CreateIfAbsent(ctx context.Context, b *model.Badge) (bool, error) {
	if err := translateDuplicate(r.db.WithContext(ctx).Create(b).Error); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *badgeRepository) ListByUser(ctx context.Context, uid string) ([]model.Badge, error) {
	var list []model.Badge
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("earned_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *badgeRepository) NamesByUser(ctx context.Context, uid string) (map[string]bool, error) {
	list, err := r.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(list))
	for _, b := range list {
		names[b.Name] = true
	}
	return names, nil
}

func (r *badgeRepository) SetDB(db *gorm.DB) {
	r.db = db
}
