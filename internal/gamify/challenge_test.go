package gamify

import (
	"testing"
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
)

func TestChallengeProgress(t *testing.T) {
	tests := []struct {
		name    string
		counter int64
		target  int64
		want    int64
	}{
		{"below target", 2, 5, 2},
		{"at target", 5, 5, 5},
		{"clamped", 9, 5, 5},
		{"negative", -1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChallengeProgress(tt.counter, tt.target); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestClaimable(t *testing.T) {
	if Claimable(4, 5, false) {
		t.Fatal("below target must not be claimable")
	}
	if !Claimable(5, 5, false) {
		t.Fatal("reaching target must be claimable")
	}
	if Claimable(5, 5, true) {
		t.Fatal("completed challenge must not be claimable again")
	}
}

func TestPeriodStart(t *testing.T) {
	// Wednesday
	now := time.Date(2025, time.June, 11, 15, 30, 0, 0, time.UTC)
	day := PeriodStart(model.ChallengePeriodDaily, now)
	if day != time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("daily start=%v", day)
	}
	week := PeriodStart(model.ChallengePeriodWeekly, now)
	if week != time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("weekly start=%v", week)
	}
	// Sunday still belongs to the week started the previous Monday
	sunday := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	if got := PeriodStart(model.ChallengePeriodWeekly, sunday); got != week {
		t.Fatalf("sunday weekly start=%v want=%v", got, week)
	}
}
