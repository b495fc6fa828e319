package gamify

import "sort"

type LeaderboardEntry struct {
	UID            string `json:"uid"`
	DisplayName    string `json:"displayName"`
	GoalsCompleted int64  `json:"goalsCompleted"`
	CurrentStreak  int    `json:"currentStreak"`
	Rank           int    `json:"rank"`
}

// RankEntries sorts by completed goals descending, ties broken by current
// streak descending, and assigns 1-based ranks.
func RankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	ranked := make([]LeaderboardEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].GoalsCompleted != ranked[j].GoalsCompleted {
			return ranked[i].GoalsCompleted > ranked[j].GoalsCompleted
		}
		return ranked[i].CurrentStreak > ranked[j].CurrentStreak
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// RankOf returns the rank for a uid, or 0 when absent.
func RankOf(ranked []LeaderboardEntry, uid string) int {
	for _, e := range ranked {
		if e.UID == uid {
			return e.Rank
		}
	}
	return 0
}

// RankImproved fires only for a numeric improvement over a previously
// observed rank, and only inside the top 10.
func RankImproved(prev, next int) bool {
	return prev > 0 && next > 0 && next < prev && next <= 10
}

// TopThree reports the strong celebratory tier; it applies whenever the new
// rank is 1-3, including the first time it is observed.
func TopThree(rank int) bool {
	return rank >= 1 && rank <= 3
}
