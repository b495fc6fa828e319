package repository

import (
	"context"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type CommunityRepository interface {
	CreatePost(ctx context.Context, p *model.CommunityPost) error
	FindPost(ctx context.Context, id uint64) (*model.CommunityPost, error)
	ListPosts(ctx context.Context, limit int) ([]model.CommunityPost, error)
	CountPostsByUser(ctx context.Context, uid string) (int64, error)
	// CreateLike returns ErrDuplicate when the user already liked the post.
	CreateLike(ctx context.Context, l *model.PostLike) error
	CountLikes(ctx context.Context, postID uint64) (int64, error)
	SetDB(db *gorm.DB)
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) CreatePost(ctx context.Context, p *model.CommunityPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *communityRepository) FindPost(ctx context.Context, id uint64) (*model.CommunityPost, error) {
	var p model.CommunityPost
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *communityRepository) ListPosts(ctx context.Context, limit int) ([]model.CommunityPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var list []model.CommunityPost
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *communityRepository) CountPostsByUser(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.CommunityPost{}).
		Where("uid = ?", uid).
		Count(&cnt).Error
	return cnt, err
}

func (r *communityRepository) CreateLike(ctx context.Context, l *model.PostLike) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(l).Error)
}

func (r *communityRepository) CountLikes(ctx context.Context, postID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

func (r *communityRepository) SetDB(db *gorm.DB) {
	r.db = db
}
