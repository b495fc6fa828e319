package service

import (
	"context"
	"errors"

	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"gorm.io/gorm"
)

// ProgressService owns the UserProgress row. Impact fields are strictly
// additive; the seed balance moves only through the three explicit
// operations so a credit can never clobber an authoritative set.
type ProgressService interface {
	Get(ctx context.Context, uid string) (*model.UserProgress, error)
	ApplyImpact(ctx context.Context, uid string, d repository.ImpactDelta) (*model.UserProgress, error)
	CreditSeeds(ctx context.Context, uid string, amount int64) (int64, error)
	SetSeeds(ctx context.Context, uid string, amount int64) (int64, error)
	SpendSeeds(ctx context.Context, uid string, amount int64) error
}

type progressService struct {
	repo repository.ProgressRepository
	hub  *realtime.Hub
}

func NewProgressService(repo repository.ProgressRepository, hub *realtime.Hub) ProgressService {
	return &progressService{repo: repo, hub: hub}
}

func (s *progressService) Get(ctx context.Context, uid string) (*model.UserProgress, error) {
	return s.repo.Get(ctx, uid)
}

func (s *progressService) ApplyImpact(ctx context.Context, uid string, d repository.ImpactDelta) (*model.UserProgress, error) {
	if err := s.repo.ApplyImpact(ctx, uid, d); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.publish(uid)
	return p, nil
}

func (s *progressService) CreditSeeds(ctx context.Context, uid string, amount int64) (int64, error) {
	balance, err := s.repo.CreditSeeds(ctx, uid, amount)
	if err != nil {
		return 0, err
	}
	s.publish(uid)
	return balance, nil
}

func (s *progressService) SetSeeds(ctx context.Context, uid string, amount int64) (int64, error) {
	if err := s.repo.SetSeeds(ctx, uid, amount); err != nil {
		return 0, err
	}
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		return 0, err
	}
	s.publish(uid)
	return p.SeedPoints, nil
}

func (s *progressService) SpendSeeds(ctx context.Context, uid string, amount int64) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	if err := s.repo.SpendSeeds(ctx, uid, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientSeeds
		}
		return err
	}
	s.publish(uid)
	return nil
}

func (s *progressService) publish(uid string) {
	if s.hub != nil {
		s.hub.Publish(realtime.ChangeEvent{Table: "user_progress", Type: realtime.ChangeUpdate, UID: uid})
	}
}
