package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sproutly/sproutly-backend/internal/model"
)

func newShopFixture(balance int64) (ShopService, *fakeProgress) {
	repo := newFakeShopRepo(&model.ShopItem{ID: 3, Slug: "golden-pot", Title: "Golden Pot", PriceSeeds: 100})
	progress := newFakeProgress()
	progress.balances["u1"] = balance
	return NewShopService(repo, progress, &fakeNotify{}), progress
}

func TestPurchaseRejectsInsufficientBalance(t *testing.T) {
	svc, progress := newShopFixture(40)

	_, err := svc.Purchase(context.Background(), "u1", 3)
	if !errors.Is(err, ErrInsufficientSeeds) {
		t.Fatalf("err = %v, want ErrInsufficientSeeds", err)
	}
	// Rejected, never clamped: the balance is untouched.
	if progress.balances["u1"] != 40 {
		t.Fatalf("balance = %d, want 40", progress.balances["u1"])
	}
}

func TestPurchaseDebitsExactPrice(t *testing.T) {
	svc, progress := newShopFixture(150)

	item, err := svc.Purchase(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Owned || item.PriceSeeds != 100 {
		t.Fatalf("got %+v", item)
	}
	if progress.balances["u1"] != 50 {
		t.Fatalf("balance = %d, want 50", progress.balances["u1"])
	}
}

func TestPurchaseDuplicateRefunds(t *testing.T) {
	svc, progress := newShopFixture(250)
	ctx := context.Background()

	if _, err := svc.Purchase(ctx, "u1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Purchase(ctx, "u1", 3)
	if !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("err = %v, want ErrAlreadyOwned", err)
	}
	// The second debit was refunded.
	if progress.balances["u1"] != 150 {
		t.Fatalf("balance = %d, want 150", progress.balances["u1"])
	}
}

func TestPurchaseUnknownItem(t *testing.T) {
	svc, _ := newShopFixture(100)
	if _, err := svc.Purchase(context.Background(), "u1", 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEquipRequiresOwnership(t *testing.T) {
	svc, _ := newShopFixture(150)
	ctx := context.Background()

	if err := svc.Equip(ctx, "u1", 3, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Purchase(ctx, "u1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Equip(ctx, "u1", 3, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Re-equipping the same state is a no-op, not an error.
	if err := svc.Equip(ctx, "u1", 3, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
