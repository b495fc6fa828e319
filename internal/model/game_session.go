package model

import "time"

type GameKind string

const (
	GameKindQuiz GameKind = "quiz"
	GameKindGame GameKind = "game"
)

// GameSession records one quiz or minigame run. Challenge metrics are
// counted over these rows.
type GameSession struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID         string    `gorm:"column:uid;size:128;index;not null" json:"uid"`
	Kind        GameKind  `gorm:"size:16;not null" json:"kind"`
	Score       int64     `gorm:"not null;default:0" json:"score"`
	SeedsEarned int64     `gorm:"column:seeds_earned;not null;default:0" json:"seedsEarned"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}
