package service

import (
	"testing"
	"time"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(2025, time.June, 10, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func TestInQuietWindowWraps(t *testing.T) {
	tests := []struct {
		name  string
		now   string
		quiet bool
	}{
		{"late evening", "23:30", true},
		{"early morning", "06:00", true},
		{"daytime", "08:00", false},
		{"exact start", "22:00", true},
		{"exact end", "07:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InQuietWindow("22:00", "07:00", at(tt.now)); got != tt.quiet {
				t.Fatalf("now=%s got=%v want=%v", tt.now, got, tt.quiet)
			}
		})
	}
}

func TestInQuietWindowNonWrapping(t *testing.T) {
	if !InQuietWindow("12:00", "14:00", at("13:00")) {
		t.Fatal("inside plain window must be quiet")
	}
	if InQuietWindow("12:00", "14:00", at("15:00")) {
		t.Fatal("outside plain window must not be quiet")
	}
}

func TestInQuietWindowDisabled(t *testing.T) {
	if InQuietWindow("", "", at("23:00")) {
		t.Fatal("empty window must be disabled")
	}
	if InQuietWindow("10:00", "10:00", at("10:00")) {
		t.Fatal("zero-length window must be disabled")
	}
}

func TestShouldNotify(t *testing.T) {
	prefs := &model.NotificationPreferences{
		AchievementsEnabled: true,
		LeaderboardEnabled:  false,
		ChallengesEnabled:   true,
		StreakEnabled:       true,
		CommunityEnabled:    true,
		QuietStart:          "22:00",
		QuietEnd:            "07:00",
	}
	if ShouldNotify(prefs, gamify.CategoryAchievement, at("23:30")) {
		t.Fatal("quiet hours must suppress every category")
	}
	if ShouldNotify(prefs, gamify.CategoryLeaderboard, at("12:00")) {
		t.Fatal("disabled category must be suppressed")
	}
	if !ShouldNotify(prefs, gamify.CategoryChallenge, at("12:00")) {
		t.Fatal("enabled category outside quiet hours must pass")
	}
}
