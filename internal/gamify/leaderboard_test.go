package gamify

import "testing"

func TestRankEntriesTieBreak(t *testing.T) {
	ranked := RankEntries([]LeaderboardEntry{
		{UID: "slow", GoalsCompleted: 5, CurrentStreak: 2},
		{UID: "fast", GoalsCompleted: 5, CurrentStreak: 4},
		{UID: "top", GoalsCompleted: 9, CurrentStreak: 0},
	})
	if ranked[0].UID != "top" || ranked[1].UID != "fast" || ranked[2].UID != "slow" {
		t.Fatalf("unexpected order: %+v", ranked)
	}
	if ranked[1].Rank != 2 || ranked[2].Rank != 3 {
		t.Fatalf("ranks must be 1-based positions: %+v", ranked)
	}
}

func TestRankImproved(t *testing.T) {
	tests := []struct {
		name string
		prev int
		next int
		want bool
	}{
		{"improved inside top 10", 8, 5, true},
		{"worsened", 5, 8, false},
		{"unchanged", 5, 5, false},
		{"improved outside top 10", 30, 12, false},
		{"first observation", 0, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RankImproved(tt.prev, tt.next); got != tt.want {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestTopThree(t *testing.T) {
	for rank, want := range map[int]bool{1: true, 3: true, 4: false, 0: false} {
		if got := TopThree(rank); got != want {
			t.Fatalf("rank=%d got=%v want=%v", rank, got, want)
		}
	}
}

func TestRankOf(t *testing.T) {
	ranked := RankEntries([]LeaderboardEntry{{UID: "a", GoalsCompleted: 1}})
	if RankOf(ranked, "a") != 1 {
		t.Fatal("expected rank 1")
	}
	if RankOf(ranked, "missing") != 0 {
		t.Fatal("absent uid must rank 0")
	}
}
