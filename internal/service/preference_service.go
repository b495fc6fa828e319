package service

import (
	"context"
	"errors"
	"time"

	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

type PreferenceService interface {
	Get(ctx context.Context, uid string) (*model.NotificationPreferences, error)
	Update(ctx context.Context, uid string, p *model.NotificationPreferences) (*model.NotificationPreferences, error)
}

type preferenceService struct {
	repo repository.PreferenceRepository
}

func NewPreferenceService(repo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) Get(ctx context.Context, uid string) (*model.NotificationPreferences, error) {
	return s.repo.Get(ctx, uid)
}

func validQuietBound(v string) bool {
	if v == "" {
		return true
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

func (s *preferenceService) Update(ctx context.Context, uid string, p *model.NotificationPreferences) (*model.NotificationPreferences, error) {
	if !validQuietBound(p.QuietStart) || !validQuietBound(p.QuietEnd) {
		return nil, errors.New("quiet hours must be HH:MM")
	}
	// Both bounds or neither; a half-open window is meaningless.
	if (p.QuietStart == "") != (p.QuietEnd == "") {
		return nil, errors.New("quiet hours require both start and end")
	}
	current, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	p.UID = uid
	p.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid)
}
