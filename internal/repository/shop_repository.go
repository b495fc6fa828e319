package repository

import (
	"context"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type ShopRepository interface {
	ListItems(ctx context.Context) ([]model.ShopItem, error)
	FindItem(ctx context.Context, id uint64) (*model.ShopItem, error)
	CreateItem(ctx context.Context, it *model.ShopItem) error
	// CreateOwnership returns ErrDuplicate when the user already owns the
	// item.
	CreateOwnership(ctx context.Context, o *model.ItemOwnership) error
	ListOwnerships(ctx context.Context, uid string) ([]model.ItemOwnership, error)
	SetEquipped(ctx context.Context, uid string, itemID uint64, equipped bool) (int64, error)
	SetDB(db *gorm.DB)
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) ListItems(ctx context.Context) ([]model.ShopItem, error) {
	var list []model.ShopItem
	if err := r.db.WithContext(ctx).Order("price_seeds, id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *shopRepository) FindItem(ctx context.Context, id uint64) (*model.ShopItem, error) {
	var it model.ShopItem
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *shopRepository) CreateItem(ctx context.Context, it *model.ShopItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *shopRepository) CreateOwnership(ctx context.Context, o *model.ItemOwnership) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *shopRepository) ListOwnerships(ctx context.Context, uid string) ([]model.ItemOwnership, error) {
	var list []model.ItemOwnership
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *shopRepository) SetEquipped(ctx context.Context, uid string, itemID uint64, equipped bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ItemOwnership{}).
		Where("uid = ? AND item_id = ?", uid, itemID).
		Update("equipped", equipped)
	return res.RowsAffected, res.Error
}

func (r *shopRepository) SetDB(db *gorm.DB) {
	r.db = db
}
