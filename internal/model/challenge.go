package model

import "time"

type ChallengePeriod string

const (
	ChallengePeriodDaily  ChallengePeriod = "daily"
	ChallengePeriodWeekly ChallengePeriod = "weekly"
)

type ChallengeMetric string

const (
	MetricTrees            ChallengeMetric = "trees"
	MetricQuizScore        ChallengeMetric = "quiz_score"
	MetricGamesPlayed      ChallengeMetric = "games_played"
	MetricQuizzesCompleted ChallengeMetric = "quizzes_completed"
)

type Challenge struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"size:120;not null" json:"title"`
	Period      ChallengePeriod `gorm:"size:16;not null;index" json:"period"`
	Metric      ChallengeMetric `gorm:"size:32;not null" json:"metric"`
	TargetValue int64           `gorm:"column:target_value;not null" json:"targetValue"`
	SeedReward  int64           `gorm:"column:seed_reward;not null" json:"seedReward"`
	StartsAt    time.Time       `gorm:"column:starts_at;not null;index" json:"startsAt"`
	EndsAt      time.Time       `gorm:"column:ends_at;not null;index" json:"endsAt"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeCompletion is recorded once on claim; the unique index resolves
// races between concurrent claim attempts.
type ChallengeCompletion struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UID         string    `gorm:"column:uid;size:128;uniqueIndex:uk_completions_uid_challenge;not null" json:"uid"`
	ChallengeID uint64    `gorm:"column:challenge_id;uniqueIndex:uk_completions_uid_challenge;not null" json:"challengeId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ChallengeCompletion) TableName() string {
	return "challenge_completions"
}
