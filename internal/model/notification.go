package model

import "time"

type Notification struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UID       string     `gorm:"column:uid;size:128;uniqueIndex:uk_notifications_uid_key;index;not null" json:"uid"`
	Category  string     `gorm:"size:32;not null" json:"category"`
	Title     string     `gorm:"size:255" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	DedupeKey *string    `gorm:"column:dedupe_key;size:255;uniqueIndex:uk_notifications_uid_key" json:"-"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
