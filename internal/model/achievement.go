package model

import "time"

// Achievement is an append-only log entry; every insertion is accompanied
// by an equal seed credit on UserProgress.
type Achievement struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID         string    `gorm:"column:uid;size:128;index;not null" json:"uid"`
	Text        string    `gorm:"size:255;not null" json:"text"`
	SeedsEarned int64     `gorm:"column:seeds_earned;not null;default:0" json:"seedsEarned"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}
