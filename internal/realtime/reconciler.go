package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/sproutly/sproutly-backend/internal/gamify"
)

// Snapshot is the derived gamification state the reconciler diffs between
// recomputations.
type Snapshot struct {
	DayStreak   int
	MonthStreak int
	Rank        int
	Alerts      []gamify.HealthAlert
}

func (s Snapshot) alertKeys() map[string]bool {
	keys := make(map[string]bool, len(s.Alerts))
	for _, a := range s.Alerts {
		keys[a.Key()] = true
	}
	return keys
}

// Evaluator recomputes the full derived state for a user from persisted
// rows. It must be a pure read: the reconciler calls it on every change and
// lets the last recomputation win.
type Evaluator interface {
	Snapshot(ctx context.Context, uid string) (Snapshot, error)
}

// Notifier receives newly crossed thresholds. Implementations are expected
// to be idempotent per logical event (deduplicated persistence).
type Notifier interface {
	StreakMilestone(ctx context.Context, uid string, days int)
	MonthStreakIncreased(ctx context.Context, uid string, months int)
	HealthAlert(ctx context.Context, uid string, alert gamify.HealthAlert)
	RankChanged(ctx context.Context, uid string, prev, next int)
}

// watchedTables are the change sources that feed the recompute pipeline.
var watchedTables = []string{"planted_trees", "challenge_completions", "disease_diagnoses"}

// Reconciler subscribes to change streams, recomputes derived state in full
// on every event, and hands newly crossed thresholds to the notifier.
type Reconciler struct {
	hub      *Hub
	eval     Evaluator
	notifier Notifier

	mu      sync.Mutex
	prev    map[string]Snapshot
	alive   bool
	cancels []func()
}

func NewReconciler(hub *Hub, eval Evaluator, notifier Notifier) *Reconciler {
	return &Reconciler{
		hub:      hub,
		eval:     eval,
		notifier: notifier,
		prev:     make(map[string]Snapshot),
		alive:    true,
	}
}

// Start subscribes to the watched tables.
func (r *Reconciler) Start() {
	for _, table := range watchedTables {
		cancel := r.hub.Subscribe(table, func(ev ChangeEvent) {
			r.Recompute(context.Background(), ev.UID)
		})
		r.mu.Lock()
		r.cancels = append(r.cancels, cancel)
		r.mu.Unlock()
	}
}

// Baseline establishes the per-user snapshot without firing notifications,
// typically when a session opens.
func (r *Reconciler) Baseline(ctx context.Context, uid string) {
	snap, err := r.eval.Snapshot(ctx, uid)
	if err != nil {
		log.Printf("[reconcile] uid=%s stage=baseline_fail err=%v", uid, err)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.alive {
		return
	}
	if _, known := r.prev[uid]; !known {
		r.prev[uid] = snap
	}
}

// Recompute re-reads persisted state, commits the new snapshot, and
// dispatches threshold crossings against the previous one. The first
// recomputation for a user only establishes the baseline.
func (r *Reconciler) Recompute(ctx context.Context, uid string) {
	if uid == "" {
		return
	}
	snap, err := r.eval.Snapshot(ctx, uid)
	if err != nil {
		log.Printf("[reconcile] uid=%s stage=snapshot_fail err=%v", uid, err)
		return
	}

	r.mu.Lock()
	if !r.alive {
		r.mu.Unlock()
		return
	}
	prev, known := r.prev[uid]
	r.prev[uid] = snap
	r.mu.Unlock()

	if !known {
		return
	}

	if days, ok := gamify.CrossedDayMilestone(prev.DayStreak, snap.DayStreak); ok {
		r.notifier.StreakMilestone(ctx, uid, days)
	}
	if gamify.MonthStreakIncreased(prev.MonthStreak, snap.MonthStreak) {
		r.notifier.MonthStreakIncreased(ctx, uid, snap.MonthStreak)
	}
	prevKeys := prev.alertKeys()
	for _, alert := range snap.Alerts {
		if !prevKeys[alert.Key()] {
			r.notifier.HealthAlert(ctx, uid, alert)
		}
	}
	if snap.Rank != prev.Rank && (gamify.RankImproved(prev.Rank, snap.Rank) || gamify.TopThree(snap.Rank)) {
		r.notifier.RankChanged(ctx, uid, prev.Rank, snap.Rank)
	}
}

// Close tears down subscriptions; recomputations that finish afterwards
// must not commit state.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.alive = false
	cancels := r.cancels
	r.cancels = nil
	r.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
