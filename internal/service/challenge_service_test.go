package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
)

func newChallengeFixture(t *testing.T, trees int) (*challengeService, *fakeProgress, *fakeNotify) {
	t.Helper()
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	treeRepo := &fakeTreeRepo{}
	for i := 0; i < trees; i++ {
		treeRepo.trees = append(treeRepo.trees, model.PlantedTree{UID: "u1", PlantedAt: now.Add(-time.Hour)})
	}
	challengeRepo := newFakeChallengeRepo(&model.Challenge{
		ID:          7,
		Title:       "Plant 3 trees today",
		Period:      model.ChallengePeriodDaily,
		Metric:      model.MetricTrees,
		TargetValue: 3,
		SeedReward:  25,
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
	})
	progress := newFakeProgress()
	notify := &fakeNotify{}
	hub := realtime.NewHub()
	t.Cleanup(hub.Close)

	svc := NewChallengeService(challengeRepo, treeRepo, &fakeGameRepo{}, progress, &fakeBadges{}, notify, hub).(*challengeService)
	svc.now = func() time.Time { return now }
	return svc, progress, notify
}

func TestChallengeClaimCreditsOnce(t *testing.T) {
	svc, progress, notify := newChallengeFixture(t, 3)
	ctx := context.Background()

	res, err := svc.Claim(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SeedsEarned != 25 || res.SeedBalance != 25 {
		t.Fatalf("got %+v", res)
	}
	if len(notify.events) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notify.events))
	}

	// A repeat claim must not credit again.
	if _, err := svc.Claim(ctx, "u1", 7); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
	}
	if len(progress.credits) != 1 {
		t.Fatalf("credits = %v, want exactly one", progress.credits)
	}
}

func TestChallengeClaimRequiresTarget(t *testing.T) {
	svc, progress, _ := newChallengeFixture(t, 2)

	if _, err := svc.Claim(context.Background(), "u1", 7); !errors.Is(err, ErrNotClaimable) {
		t.Fatalf("err = %v, want ErrNotClaimable", err)
	}
	if len(progress.credits) != 0 {
		t.Fatalf("credits = %v, want none", progress.credits)
	}
}

func TestChallengeClaimUnknownID(t *testing.T) {
	svc, _, _ := newChallengeFixture(t, 3)

	if _, err := svc.Claim(context.Background(), "u1", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListWithProgressClampsAndFlags(t *testing.T) {
	svc, _, _ := newChallengeFixture(t, 5)
	ctx := context.Background()

	views, err := svc.ListWithProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	v := views[0]
	if v.Progress != 3 {
		t.Fatalf("progress = %d, want clamp to target 3", v.Progress)
	}
	if !v.Claimable || v.Completed {
		t.Fatalf("got claimable=%v completed=%v", v.Claimable, v.Completed)
	}

	if _, err := svc.Claim(ctx, "u1", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	views, err = svc.ListWithProgress(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !views[0].Completed || views[0].Claimable {
		t.Fatalf("after claim got claimable=%v completed=%v", views[0].Claimable, views[0].Completed)
	}
}
