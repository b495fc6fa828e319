package service

import (
	"context"
	"errors"
	"log"

	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

type GameSessionInput struct {
	Kind        model.GameKind `json:"kind"`
	Score       int64          `json:"score"`
	SeedsEarned int64          `json:"seedsEarned"`
	// TotalSeeds, when set, is the authoritative balance reported by the
	// minigame and overwrites the stored one instead of adding to it.
	TotalSeeds *int64 `json:"totalSeeds,omitempty"`
}

type GameSessionResult struct {
	Session     *model.GameSession `json:"session"`
	SeedBalance int64              `json:"seedBalance"`
	Badges      []string           `json:"badges,omitempty"`
}

type GameService interface {
	RecordSession(ctx context.Context, uid string, in GameSessionInput) (*GameSessionResult, error)
}

type gameService struct {
	repo     repository.GameRepository
	progress ProgressService
	badges   BadgeService
	hub      *realtime.Hub
}

func NewGameService(repo repository.GameRepository, progress ProgressService, badges BadgeService, hub *realtime.Hub) GameService {
	return &gameService{repo: repo, progress: progress, badges: badges, hub: hub}
}

func (s *gameService) RecordSession(ctx context.Context, uid string, in GameSessionInput) (*GameSessionResult, error) {
	if in.Kind != model.GameKindQuiz && in.Kind != model.GameKindGame {
		return nil, errors.New("kind must be quiz or game")
	}
	if in.Score < 0 || in.SeedsEarned < 0 {
		return nil, errors.New("score and seedsEarned must be non-negative")
	}

	session := &model.GameSession{
		UID:         uid,
		Kind:        in.Kind,
		Score:       in.Score,
		SeedsEarned: in.SeedsEarned,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.hub.Publish(realtime.ChangeEvent{Table: "game_sessions", Type: realtime.ChangeInsert, UID: uid, New: session})

	var balance int64
	var err error
	if in.TotalSeeds != nil {
		balance, err = s.progress.SetSeeds(ctx, uid, *in.TotalSeeds)
	} else {
		balance, err = s.progress.CreditSeeds(ctx, uid, in.SeedsEarned)
	}
	if err != nil {
		log.Printf("[game] uid=%s session=%d stage=seeds_fail err=%v", uid, session.ID, err)
	}

	result := &GameSessionResult{Session: session, SeedBalance: balance}
	granted, err := s.badges.EvaluateAndGrant(ctx, uid)
	if err != nil {
		log.Printf("[game] uid=%s session=%d stage=badges_fail err=%v", uid, session.ID, err)
	}
	result.Badges = granted
	return result, nil
}
