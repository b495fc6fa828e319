package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repository and service interfaces. Only the
// behavior the tests exercise is implemented; everything else is a stub.

type fakeProgress struct {
	balances map[string]int64
	credits  []int64
	spends   []int64
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{balances: make(map[string]int64)}
}

func (f *fakeProgress) Get(_ context.Context, uid string) (*model.UserProgress, error) {
	return &model.UserProgress{UID: uid, SeedPoints: f.balances[uid]}, nil
}

func (f *fakeProgress) ApplyImpact(_ context.Context, uid string, _ repository.ImpactDelta) (*model.UserProgress, error) {
	return &model.UserProgress{UID: uid, SeedPoints: f.balances[uid]}, nil
}

func (f *fakeProgress) CreditSeeds(_ context.Context, uid string, amount int64) (int64, error) {
	f.credits = append(f.credits, amount)
	f.balances[uid] += amount
	return f.balances[uid], nil
}

func (f *fakeProgress) SetSeeds(_ context.Context, uid string, amount int64) (int64, error) {
	if amount < 0 {
		amount = 0
	}
	f.balances[uid] = amount
	return amount, nil
}

func (f *fakeProgress) SpendSeeds(_ context.Context, uid string, amount int64) error {
	if f.balances[uid] < amount {
		return ErrInsufficientSeeds
	}
	f.spends = append(f.spends, amount)
	f.balances[uid] -= amount
	return nil
}

type fakeBadges struct {
	evaluations int
}

func (f *fakeBadges) EvaluateAndGrant(context.Context, string) ([]string, error) {
	f.evaluations++
	return nil, nil
}

func (f *fakeBadges) List(context.Context, string) ([]model.Badge, error) { return nil, nil }

func (f *fakeBadges) StatsFor(context.Context, string) (gamify.UserStats, error) {
	return gamify.UserStats{}, nil
}

type fakeNotify struct {
	events []NotificationEvent
}

func (f *fakeNotify) Dispatch(_ context.Context, ev NotificationEvent) {
	f.events = append(f.events, ev)
}

func (f *fakeNotify) List(context.Context, string, bool, int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotify) MarkRead(context.Context, string, uint64) error { return nil }
func (f *fakeNotify) MarkAllRead(context.Context, string) error      { return nil }

func (f *fakeNotify) StreakMilestone(ctx context.Context, uid string, days int) {
	f.Dispatch(ctx, NotificationEvent{UID: uid, Category: gamify.CategoryStreak})
}

func (f *fakeNotify) MonthStreakIncreased(ctx context.Context, uid string, months int) {
	f.Dispatch(ctx, NotificationEvent{UID: uid, Category: gamify.CategoryStreak})
}

func (f *fakeNotify) HealthAlert(ctx context.Context, uid string, alert gamify.HealthAlert) {
	f.Dispatch(ctx, NotificationEvent{UID: uid, Category: gamify.CategoryHealth, DedupeKey: "health:" + alert.Key()})
}

func (f *fakeNotify) RankChanged(ctx context.Context, uid string, prev, next int) {
	f.Dispatch(ctx, NotificationEvent{UID: uid, Category: gamify.CategoryLeaderboard})
}

type fakeChallengeRepo struct {
	challenges  map[uint64]*model.Challenge
	completions map[string]bool
}

func newFakeChallengeRepo(challenges ...*model.Challenge) *fakeChallengeRepo {
	f := &fakeChallengeRepo{
		challenges:  make(map[uint64]*model.Challenge),
		completions: make(map[string]bool),
	}
	for _, ch := range challenges {
		f.challenges[ch.ID] = ch
	}
	return f
}

func completionKey(uid string, id uint64) string {
	return fmt.Sprintf("%s:%d", uid, id)
}

func (f *fakeChallengeRepo) ListActive(_ context.Context, now time.Time) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, ch := range f.challenges {
		if !now.Before(ch.StartsAt) && now.Before(ch.EndsAt) {
			out = append(out, *ch)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) FindByID(_ context.Context, id uint64) (*model.Challenge, error) {
	ch, ok := f.challenges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ch, nil
}

func (f *fakeChallengeRepo) Create(_ context.Context, ch *model.Challenge) error {
	f.challenges[ch.ID] = ch
	return nil
}

func (f *fakeChallengeRepo) CreateCompletion(_ context.Context, c *model.ChallengeCompletion) error {
	key := completionKey(c.UID, c.ChallengeID)
	if f.completions[key] {
		return repository.ErrDuplicate
	}
	f.completions[key] = true
	return nil
}

func (f *fakeChallengeRepo) CompletionExists(_ context.Context, uid string, id uint64) (bool, error) {
	return f.completions[completionKey(uid, id)], nil
}

func (f *fakeChallengeRepo) CountCompletions(_ context.Context, uid string) (int64, error) {
	var n int64
	for key, done := range f.completions {
		if done && strings.HasPrefix(key, uid+":") {
			n++
		}
	}
	return n, nil
}

func (f *fakeChallengeRepo) CompletionCounts(context.Context, int) ([]repository.UserCompletionCount, error) {
	return nil, nil
}

func (f *fakeChallengeRepo) SetDB(*gorm.DB) {}

type fakeTreeRepo struct {
	trees []model.PlantedTree
}

func (f *fakeTreeRepo) Create(_ context.Context, t *model.PlantedTree) error {
	t.ID = uint64(len(f.trees) + 1)
	f.trees = append(f.trees, *t)
	return nil
}

func (f *fakeTreeRepo) ListByUser(_ context.Context, uid string, _ int) ([]model.PlantedTree, error) {
	var out []model.PlantedTree
	for _, t := range f.trees {
		if t.UID == uid {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTreeRepo) CountByUser(_ context.Context, uid string) (int64, error) {
	var n int64
	for _, t := range f.trees {
		if t.UID == uid {
			n++
		}
	}
	return n, nil
}

func (f *fakeTreeRepo) CountSince(_ context.Context, uid string, since time.Time) (int64, error) {
	var n int64
	for _, t := range f.trees {
		if t.UID == uid && !t.PlantedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTreeRepo) DayKeys(_ context.Context, uid string) ([]string, error) {
	seen := map[string]bool{}
	var keys []string
	for _, t := range f.trees {
		if t.UID != uid {
			continue
		}
		k := t.PlantedAt.Format(gamify.DayKeyLayout)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeTreeRepo) MonthKeys(_ context.Context, uid string) ([]string, error) {
	seen := map[string]bool{}
	var keys []string
	for _, t := range f.trees {
		if t.UID != uid {
			continue
		}
		k := t.PlantedAt.Format(gamify.MonthKeyLayout)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeTreeRepo) SetDB(*gorm.DB) {}

type fakeGameRepo struct {
	sessions []model.GameSession
}

func (f *fakeGameRepo) Create(_ context.Context, g *model.GameSession) error {
	g.ID = uint64(len(f.sessions) + 1)
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	f.sessions = append(f.sessions, *g)
	return nil
}

func (f *fakeGameRepo) CountSince(_ context.Context, uid string, kind model.GameKind, since time.Time) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if s.UID == uid && s.Kind == kind && !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeGameRepo) CountAllSince(_ context.Context, uid string, since time.Time) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if s.UID == uid && !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeGameRepo) BestScoreSince(_ context.Context, uid string, kind model.GameKind, since time.Time) (int64, error) {
	var best int64
	for _, s := range f.sessions {
		if s.UID == uid && s.Kind == kind && !s.CreatedAt.Before(since) && s.Score > best {
			best = s.Score
		}
	}
	return best, nil
}

func (f *fakeGameRepo) CountByUser(_ context.Context, uid string, kind model.GameKind) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if s.UID == uid && s.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (f *fakeGameRepo) SetDB(*gorm.DB) {}

type fakeShopRepo struct {
	items      map[uint64]*model.ShopItem
	ownerships map[string]*model.ItemOwnership
}

func newFakeShopRepo(items ...*model.ShopItem) *fakeShopRepo {
	f := &fakeShopRepo{
		items:      make(map[uint64]*model.ShopItem),
		ownerships: make(map[string]*model.ItemOwnership),
	}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func ownershipKey(uid string, itemID uint64) string {
	return fmt.Sprintf("%s:%d", uid, itemID)
}

func (f *fakeShopRepo) ListItems(context.Context) ([]model.ShopItem, error) {
	var out []model.ShopItem
	for _, it := range f.items {
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeShopRepo) FindItem(_ context.Context, id uint64) (*model.ShopItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (f *fakeShopRepo) CreateItem(_ context.Context, it *model.ShopItem) error {
	f.items[it.ID] = it
	return nil
}

func (f *fakeShopRepo) CreateOwnership(_ context.Context, o *model.ItemOwnership) error {
	key := ownershipKey(o.UID, o.ItemID)
	if _, ok := f.ownerships[key]; ok {
		return repository.ErrDuplicate
	}
	f.ownerships[key] = o
	return nil
}

func (f *fakeShopRepo) ListOwnerships(_ context.Context, uid string) ([]model.ItemOwnership, error) {
	var out []model.ItemOwnership
	for _, o := range f.ownerships {
		if o.UID == uid {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeShopRepo) SetEquipped(_ context.Context, uid string, itemID uint64, equipped bool) (int64, error) {
	o, ok := f.ownerships[ownershipKey(uid, itemID)]
	if !ok || o.Equipped == equipped {
		return 0, nil
	}
	o.Equipped = equipped
	return 1, nil
}

func (f *fakeShopRepo) SetDB(*gorm.DB) {}
