package realtime

import (
	"context"
	"sync"
	"testing"

	"github.com/sproutly/sproutly-backend/internal/gamify"
)

type stubEvaluator struct {
	mu   sync.Mutex
	snap Snapshot
	err  error
}

func (s *stubEvaluator) Snapshot(ctx context.Context, uid string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.err
}

func (s *stubEvaluator) set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

type recordingNotifier struct {
	mu        sync.Mutex
	streaks   []int
	months    []int
	alerts    []gamify.HealthAlert
	rankMoves [][2]int
}

func (n *recordingNotifier) StreakMilestone(ctx context.Context, uid string, days int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.streaks = append(n.streaks, days)
}

func (n *recordingNotifier) MonthStreakIncreased(ctx context.Context, uid string, months int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.months = append(n.months, months)
}

func (n *recordingNotifier) HealthAlert(ctx context.Context, uid string, alert gamify.HealthAlert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *recordingNotifier) RankChanged(ctx context.Context, uid string, prev, next int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rankMoves = append(n.rankMoves, [2]int{prev, next})
}

func TestReconcilerFirstRecomputeOnlyEstablishesBaseline(t *testing.T) {
	eval := &stubEvaluator{snap: Snapshot{DayStreak: 3}}
	notifier := &recordingNotifier{}
	r := NewReconciler(NewHub(), eval, notifier)

	r.Recompute(context.Background(), "u1")
	if len(notifier.streaks) != 0 {
		t.Fatalf("baseline must not notify, got %v", notifier.streaks)
	}
}

func TestReconcilerFiresOnCrossingOnceAndNotOnRepeat(t *testing.T) {
	eval := &stubEvaluator{snap: Snapshot{DayStreak: 2}}
	notifier := &recordingNotifier{}
	r := NewReconciler(NewHub(), eval, notifier)
	ctx := context.Background()

	r.Recompute(ctx, "u1") // baseline at 2
	eval.set(Snapshot{DayStreak: 3})
	r.Recompute(ctx, "u1") // crosses into 3
	r.Recompute(ctx, "u1") // duplicate change notification, unchanged state

	if len(notifier.streaks) != 1 || notifier.streaks[0] != 3 {
		t.Fatalf("want one milestone 3, got %v", notifier.streaks)
	}
}

func TestReconcilerAlertDiffUsesKeys(t *testing.T) {
	alert := gamify.HealthAlert{Type: gamify.AlertLowScore, PlantName: "Rose", Severity: "warning"}
	eval := &stubEvaluator{snap: Snapshot{}}
	notifier := &recordingNotifier{}
	r := NewReconciler(NewHub(), eval, notifier)
	ctx := context.Background()

	r.Recompute(ctx, "u1")
	eval.set(Snapshot{Alerts: []gamify.HealthAlert{alert}})
	r.Recompute(ctx, "u1")
	// Same condition, different message wording: same key, no refire.
	alert.Message = "reworded"
	eval.set(Snapshot{Alerts: []gamify.HealthAlert{alert}})
	r.Recompute(ctx, "u1")

	if len(notifier.alerts) != 1 {
		t.Fatalf("want one alert, got %v", notifier.alerts)
	}
}

func TestReconcilerRankRules(t *testing.T) {
	eval := &stubEvaluator{snap: Snapshot{Rank: 12}}
	notifier := &recordingNotifier{}
	r := NewReconciler(NewHub(), eval, notifier)
	ctx := context.Background()

	r.Recompute(ctx, "u1") // baseline rank 12
	eval.set(Snapshot{Rank: 11})
	r.Recompute(ctx, "u1") // improvement but outside top 10
	eval.set(Snapshot{Rank: 8})
	r.Recompute(ctx, "u1") // improvement inside top 10
	eval.set(Snapshot{Rank: 9})
	r.Recompute(ctx, "u1") // worsened, not top 3
	eval.set(Snapshot{Rank: 2})
	r.Recompute(ctx, "u1") // top 3

	want := [][2]int{{11, 8}, {9, 2}}
	if len(notifier.rankMoves) != len(want) {
		t.Fatalf("want %v, got %v", want, notifier.rankMoves)
	}
	for i := range want {
		if notifier.rankMoves[i] != want[i] {
			t.Fatalf("want %v, got %v", want, notifier.rankMoves)
		}
	}
}

func TestReconcilerClosedDoesNotCommit(t *testing.T) {
	eval := &stubEvaluator{snap: Snapshot{DayStreak: 2}}
	notifier := &recordingNotifier{}
	r := NewReconciler(NewHub(), eval, notifier)
	ctx := context.Background()

	r.Recompute(ctx, "u1")
	r.Close()
	eval.set(Snapshot{DayStreak: 3})
	r.Recompute(ctx, "u1")

	if len(notifier.streaks) != 0 {
		t.Fatalf("closed reconciler must not notify, got %v", notifier.streaks)
	}
}
