// Package gamify holds the pure derived-state evaluators: streaks, plant
// health scoring, challenge progress, leaderboard ranking and the badge
// catalog. Everything here is a plain function over in-memory state so the
// realtime reconciler can recompute from scratch on every change.
package gamify

import (
	"sort"
	"time"
)

const (
	DayKeyLayout   = "2006-01-02"
	MonthKeyLayout = "2006-01"
)

// DayMilestones are the streak lengths that trigger a notification when the
// streak increases into them.
var DayMilestones = []int{3, 5, 7, 10, 14, 21, 30}

// DayStreak returns the length of the maximal run of consecutive day keys
// ending at today or yesterday relative to now. An inactive today does not
// zero the streak; a gap of more than one day does.
func DayStreak(keys []string, now time.Time) int {
	return streakFrom(keys, DayKeyLayout, dayIndex, dayIndex(now.Format(DayKeyLayout)))
}

// MonthStreak returns the length of the maximal run of consecutive month
// keys ending at the current or previous calendar month relative to now.
func MonthStreak(keys []string, now time.Time) int {
	return streakFrom(keys, MonthKeyLayout, monthIndex, monthIndex(now.Format(MonthKeyLayout)))
}

// CrossedDayMilestone reports the milestone value when the streak increased
// into one of DayMilestones. Recomputing an unchanged streak never fires.
func CrossedDayMilestone(prev, next int) (int, bool) {
	if next <= prev {
		return 0, false
	}
	for _, m := range DayMilestones {
		if next == m {
			return m, true
		}
	}
	return 0, false
}

// MonthStreakIncreased reports whether the month streak strictly increased.
func MonthStreakIncreased(prev, next int) bool {
	return next > prev
}

func streakFrom(keys []string, layout string, index func(string) int, nowIdx int) int {
	if len(keys) == 0 {
		return 0
	}
	seen := make(map[int]bool, len(keys))
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		i := index(k)
		if i < 0 || seen[i] {
			continue
		}
		seen[i] = true
		idx = append(idx, i)
	}
	if len(idx) == 0 {
		return 0
	}
	sort.Ints(idx)

	last := idx[len(idx)-1]
	if nowIdx-last > 1 {
		return 0
	}
	count := 1
	for i := len(idx) - 2; i >= 0; i-- {
		if idx[i] != idx[i+1]-1 {
			break
		}
		count++
	}
	return count
}

func dayIndex(key string) int {
	t, err := time.Parse(DayKeyLayout, key)
	if err != nil {
		return -1
	}
	return int(t.Unix() / 86400)
}

func monthIndex(key string) int {
	t, err := time.Parse(MonthKeyLayout, key)
	if err != nil {
		return -1
	}
	return t.Year()*12 + int(t.Month()) - 1
}
