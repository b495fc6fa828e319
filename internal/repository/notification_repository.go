package repository

import (
	"context"
	"errors"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	// CreateIfAbsent inserts unless a row with the same (uid, dedupe_key)
	// exists; it reports whether a row was created.
	CreateIfAbsent(ctx context.Context, n *model.Notification) (bool, error)
	ListByUser(ctx context.Context, uid string, unreadOnly bool, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, uid string, id uint64) error
	MarkAllRead(ctx context.Context, uid string) error
	CountUnread(ctx context.Context, uid string) (int64, error)
	SetDB(db *gorm.DB)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateIfAbsent(ctx context.Context, n *model.Notification) (bool, error) {
	if err := translateDuplicate(r.db.WithContext(ctx).Create(n).Error); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, uid string, unreadOnly bool, limit int) ([]model.Notification, error) {
	var list []model.Notification
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	q := r.db.WithContext(ctx).Model(&model.Notification{}).Where("uid = ?", uid)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	if err := q.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, uid string, id uint64) error {
	now := r.db.NowFunc()
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND uid = ? AND read_at IS NULL", id, uid).
		Update("read_at", now).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, uid string) error {
	now := r.db.NowFunc()
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("uid = ? AND read_at IS NULL", uid).
		Update("read_at", now).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("uid = ? AND read_at IS NULL", uid).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *notificationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
