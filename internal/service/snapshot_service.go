package service

import (
	"context"
	"time"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

// snapshotService is the reconciler's evaluator: one pure read of all
// derived gamification state for a user.
type snapshotService struct {
	trees       repository.TreeRepository
	diagnoses   repository.DiagnosisRepository
	leaderboard LeaderboardService
	now         func() time.Time
}

func NewSnapshotService(trees repository.TreeRepository, diagnoses repository.DiagnosisRepository, leaderboard LeaderboardService) realtime.Evaluator {
	return &snapshotService{trees: trees, diagnoses: diagnoses, leaderboard: leaderboard, now: time.Now}
}

func (s *snapshotService) Snapshot(ctx context.Context, uid string) (realtime.Snapshot, error) {
	var snap realtime.Snapshot

	dayKeys, err := s.trees.DayKeys(ctx, uid)
	if err != nil {
		return snap, err
	}
	monthKeys, err := s.trees.MonthKeys(ctx, uid)
	if err != nil {
		return snap, err
	}
	now := s.now()
	snap.DayStreak = gamify.DayStreak(dayKeys, now)
	snap.MonthStreak = gamify.MonthStreak(monthKeys, now)

	diagnoses, err := s.diagnoses.ListByUser(ctx, uid)
	if err != nil {
		return snap, err
	}
	snap.Alerts = gamify.EvaluateHealth(diagnoses)

	rank, err := s.leaderboard.RankFor(ctx, uid)
	if err != nil {
		return snap, err
	}
	snap.Rank = rank
	return snap, nil
}
