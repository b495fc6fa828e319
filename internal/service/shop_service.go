package service

import (
	"context"
	"errors"
	"log"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"gorm.io/gorm"
)

// OwnedItem is a catalog item joined with the caller's ownership row.
type OwnedItem struct {
	model.ShopItem
	Owned    bool `json:"owned"`
	Equipped bool `json:"equipped"`
}

type ShopService interface {
	Catalog(ctx context.Context, uid string) ([]OwnedItem, error)
	// Purchase debits the price first and refunds on a duplicate ownership;
	// an insufficient balance is rejected, never clamped.
	Purchase(ctx context.Context, uid string, itemID uint64) (*OwnedItem, error)
	Equip(ctx context.Context, uid string, itemID uint64, equipped bool) error
}

type shopService struct {
	repo     repository.ShopRepository
	progress ProgressService
	notify   NotificationService
}

func NewShopService(repo repository.ShopRepository, progress ProgressService, notify NotificationService) ShopService {
	return &shopService{repo: repo, progress: progress, notify: notify}
}

func (s *shopService) Catalog(ctx context.Context, uid string) ([]OwnedItem, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	ownerships, err := s.repo.ListOwnerships(ctx, uid)
	if err != nil {
		return nil, err
	}
	owned := make(map[uint64]model.ItemOwnership, len(ownerships))
	for _, o := range ownerships {
		owned[o.ItemID] = o
	}
	out := make([]OwnedItem, 0, len(items))
	for _, it := range items {
		o, ok := owned[it.ID]
		out = append(out, OwnedItem{ShopItem: it, Owned: ok, Equipped: ok && o.Equipped})
	}
	return out, nil
}

func (s *shopService) Purchase(ctx context.Context, uid string, itemID uint64) (*OwnedItem, error) {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.progress.SpendSeeds(ctx, uid, item.PriceSeeds); err != nil {
		return nil, err
	}
	if err := s.repo.CreateOwnership(ctx, &model.ItemOwnership{UID: uid, ItemID: itemID}); err != nil {
		// The debit already happened; put the seeds back before reporting.
		if _, crErr := s.progress.CreditSeeds(ctx, uid, item.PriceSeeds); crErr != nil {
			log.Printf("[shop] uid=%s item=%d stage=refund_fail err=%v", uid, itemID, crErr)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyOwned
		}
		return nil, err
	}

	s.notify.Dispatch(ctx, NotificationEvent{
		UID:      uid,
		Category: gamify.CategoryReward,
		Title:    "Purchase complete",
		Message:  item.Title + " is now yours.",
	})
	return &OwnedItem{ShopItem: *item, Owned: true}, nil
}

func (s *shopService) Equip(ctx context.Context, uid string, itemID uint64, equipped bool) error {
	rows, err := s.repo.SetEquipped(ctx, uid, itemID, equipped)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Idempotent re-equip also affects zero rows; only a missing
		// ownership is an error.
		ownerships, lerr := s.repo.ListOwnerships(ctx, uid)
		if lerr != nil {
			return lerr
		}
		for _, o := range ownerships {
			if o.ItemID == itemID {
				return nil
			}
		}
		return ErrNotFound
	}
	return nil
}
