package model

import "time"

// NotificationPreferences is created lazily with defaults on first read.
// Quiet hours are "HH:MM" in the user's local time; a window whose start is
// after its end wraps past midnight.
type NotificationPreferences struct {
	UID                 string    `gorm:"column:uid;primaryKey;size:128" json:"uid"`
	AchievementsEnabled bool      `gorm:"column:achievements_enabled;not null;default:true" json:"achievementsEnabled"`
	LeaderboardEnabled  bool      `gorm:"column:leaderboard_enabled;not null;default:true" json:"leaderboardEnabled"`
	ChallengesEnabled   bool      `gorm:"column:challenges_enabled;not null;default:true" json:"challengesEnabled"`
	StreakEnabled       bool      `gorm:"column:streak_enabled;not null;default:true" json:"streakEnabled"`
	CommunityEnabled    bool      `gorm:"column:community_enabled;not null;default:true" json:"communityEnabled"`
	SoundEnabled        bool      `gorm:"column:sound_enabled;not null;default:true" json:"soundEnabled"`
	QuietStart          string    `gorm:"column:quiet_start;size:5" json:"quietStart"`
	QuietEnd            string    `gorm:"column:quiet_end;size:5" json:"quietEnd"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (NotificationPreferences) TableName() string {
	return "notification_preferences"
}
