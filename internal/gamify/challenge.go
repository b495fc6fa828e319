package gamify

import (
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
)

// ChallengeProgress clamps the period-scoped counter to the target.
func ChallengeProgress(counter, target int64) int64 {
	if counter > target {
		return target
	}
	if counter < 0 {
		return 0
	}
	return counter
}

// Claimable is true exactly when progress reached the target and no
// completion record exists yet.
func Claimable(counter, target int64, completed bool) bool {
	return !completed && counter >= target
}

// PeriodStart returns the start of the counting window for a challenge
// period: midnight today for daily, Monday midnight for weekly.
func PeriodStart(period model.ChallengePeriod, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if period != model.ChallengePeriodWeekly {
		return day
	}
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
