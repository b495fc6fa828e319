package gamify

import (
	"testing"
	"time"
)

func TestMonthStreak(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"three consecutive", []string{"2025-01", "2025-02", "2025-03"}, 3},
		{"gap resets", []string{"2025-01", "2025-03"}, 1},
		{"ends previous month", []string{"2025-01", "2025-02"}, 2},
		{"stale run", []string{"2024-11", "2024-12"}, 0},
		{"empty", nil, 0},
		{"unsorted with duplicates", []string{"2025-03", "2025-01", "2025-02", "2025-02"}, 3},
		{"year boundary", []string{"2024-12", "2025-01", "2025-02", "2025-03"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStreak(tt.keys, now); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestDayStreak(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"ends today", []string{"2025-06-08", "2025-06-09", "2025-06-10"}, 3},
		{"ends yesterday", []string{"2025-06-08", "2025-06-09"}, 2},
		{"broken two days ago", []string{"2025-06-07", "2025-06-08"}, 0},
		{"gap inside run", []string{"2025-06-06", "2025-06-08", "2025-06-09", "2025-06-10"}, 3},
		{"stale run", []string{"2025-05-30", "2025-05-31", "2025-06-01"}, 0},
		{"invalid key ignored", []string{"garbage", "2025-06-10"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayStreak(tt.keys, now); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestCrossedDayMilestone(t *testing.T) {
	tests := []struct {
		name      string
		prev      int
		next      int
		milestone int
		fired     bool
	}{
		{"into 3", 2, 3, 3, true},
		{"into 7", 6, 7, 7, true},
		{"unchanged does not refire", 7, 7, 0, false},
		{"decrease", 7, 1, 0, false},
		{"skip lands on milestone", 1, 5, 5, true},
		{"skip lands between", 3, 6, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := CrossedDayMilestone(tt.prev, tt.next)
			if ok != tt.fired || m != tt.milestone {
				t.Fatalf("got=(%d,%v) want=(%d,%v)", m, ok, tt.milestone, tt.fired)
			}
		})
	}
}
