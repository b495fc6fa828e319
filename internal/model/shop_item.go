package model

import "time"

type ShopItem struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex:uk_shop_items_slug" json:"slug"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	PriceSeeds  int64     `gorm:"column:price_seeds;not null" json:"priceSeeds"`
	Category    string    `gorm:"size:64" json:"category"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ShopItem) TableName() string {
	return "shop_items"
}

// ItemOwnership marks a purchased item; Equipped persists the active
// cosmetic set so every view reads one source of truth.
type ItemOwnership struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string    `gorm:"column:uid;size:128;uniqueIndex:uk_ownerships_uid_item;not null" json:"uid"`
	ItemID    uint64    `gorm:"column:item_id;uniqueIndex:uk_ownerships_uid_item;not null" json:"itemId"`
	Equipped  bool      `gorm:"not null;default:false" json:"equipped"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ItemOwnership) TableName() string {
	return "item_ownerships"
}
