package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

// LeaderboardService ranks users by completed challenge goals, ties broken
// by current day streak. Ranks are computed on read; nothing is stored.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]gamify.LeaderboardEntry, error)
	RankFor(ctx context.Context, uid string) (int, error)
}

type leaderboardService struct {
	challenges repository.ChallengeRepository
	trees      repository.TreeRepository
	now        func() time.Time
}

func NewLeaderboardService(challenges repository.ChallengeRepository, trees repository.TreeRepository) LeaderboardService {
	return &leaderboardService{challenges: challenges, trees: trees, now: time.Now}
}

// displayName keeps uids out of client payloads without a profile table.
func displayName(uid string) string {
	tail := uid
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return fmt.Sprintf("Planter-%s", tail)
}

func (s *leaderboardService) entries(ctx context.Context, limit int) ([]gamify.LeaderboardEntry, error) {
	counts, err := s.challenges.CompletionCounts(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := s.now()
	entries := make([]gamify.LeaderboardEntry, 0, len(counts))
	for _, row := range counts {
		streak := 0
		dayKeys, err := s.trees.DayKeys(ctx, row.UID)
		if err != nil {
			log.Printf("[leaderboard] uid=%s stage=streak_fail err=%v", row.UID, err)
		} else {
			streak = gamify.DayStreak(dayKeys, now)
		}
		entries = append(entries, gamify.LeaderboardEntry{
			UID:            row.UID,
			DisplayName:    displayName(row.UID),
			GoalsCompleted: row.Goals,
			CurrentStreak:  streak,
		})
	}
	return gamify.RankEntries(entries), nil
}

func (s *leaderboardService) Top(ctx context.Context, limit int) ([]gamify.LeaderboardEntry, error) {
	return s.entries(ctx, limit)
}

// RankFor returns 0 when the user has no completions yet.
func (s *leaderboardService) RankFor(ctx context.Context, uid string) (int, error) {
	ranked, err := s.entries(ctx, 50)
	if err != nil {
		return 0, err
	}
	return gamify.RankOf(ranked, uid), nil
}
