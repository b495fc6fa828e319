package model

import "time"

// Badge is append-only; a name may be earned at most once per user.
type Badge struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID      string    `gorm:"column:uid;size:128;uniqueIndex:uk_badges_uid_name;not null" json:"uid"`
	Name     string    `gorm:"size:120;uniqueIndex:uk_badges_uid_name;not null" json:"name"`
	EarnedAt time.Time `gorm:"column:earned_at;autoCreateTime" json:"earnedAt"`
}

func (Badge) TableName() string {
	return "badges"
}
