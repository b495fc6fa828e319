package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"gorm.io/gorm"
)

// ChallengeView is one active challenge with the caller's progress attached.
type ChallengeView struct {
	model.Challenge
	Progress  int64 `json:"progress"`
	Completed bool  `json:"completed"`
	Claimable bool  `json:"claimable"`
}

// ClaimResult reports the reward granted by a successful claim.
type ClaimResult struct {
	ChallengeID uint64   `json:"challengeId"`
	SeedsEarned int64    `json:"seedsEarned"`
	SeedBalance int64    `json:"seedBalance"`
	Badges      []string `json:"badges,omitempty"`
}

type ChallengeService interface {
	ListWithProgress(ctx context.Context, uid string) ([]ChallengeView, error)
	// Claim grants the reward exactly once; ErrNotClaimable when progress is
	// short, ErrAlreadyCompleted on a repeat claim.
	Claim(ctx context.Context, uid string, challengeID uint64) (*ClaimResult, error)
}

type challengeService struct {
	challenges repository.ChallengeRepository
	trees      repository.TreeRepository
	games      repository.GameRepository
	progress   ProgressService
	badges     BadgeService
	notify     NotificationService
	hub        *realtime.Hub
	now        func() time.Time
}

func NewChallengeService(
	challenges repository.ChallengeRepository,
	trees repository.TreeRepository,
	games repository.GameRepository,
	progress ProgressService,
	badges BadgeService,
	notify NotificationService,
	hub *realtime.Hub,
) ChallengeService {
	return &challengeService{
		challenges: challenges,
		trees:      trees,
		games:      games,
		progress:   progress,
		badges:     badges,
		notify:     notify,
		hub:        hub,
		now:        time.Now,
	}
}

// counterFor reads the period-scoped metric value. Counters reset implicitly
// because each read is bounded by the period start, never stored.
func (s *challengeService) counterFor(ctx context.Context, uid string, ch *model.Challenge) (int64, error) {
	since := gamify.PeriodStart(ch.Period, s.now())
	switch ch.Metric {
	case model.MetricTrees:
		return s.trees.CountSince(ctx, uid, since)
	case model.MetricQuizScore:
		return s.games.BestScoreSince(ctx, uid, model.GameKindQuiz, since)
	case model.MetricQuizzesCompleted:
		return s.games.CountSince(ctx, uid, model.GameKindQuiz, since)
	case model.MetricGamesPlayed:
		return s.games.CountSince(ctx, uid, model.GameKindGame, since)
	}
	return 0, fmt.Errorf("unknown challenge metric %q", ch.Metric)
}

func (s *challengeService) ListWithProgress(ctx context.Context, uid string) ([]ChallengeView, error) {
	active, err := s.challenges.ListActive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	views := make([]ChallengeView, 0, len(active))
	for i := range active {
		ch := active[i]
		counter, err := s.counterFor(ctx, uid, &ch)
		if err != nil {
			log.Printf("[challenge] uid=%s challenge=%d stage=counter_fail err=%v", uid, ch.ID, err)
			counter = 0
		}
		completed, err := s.challenges.CompletionExists(ctx, uid, ch.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ChallengeView{
			Challenge: ch,
			Progress:  gamify.ChallengeProgress(counter, ch.TargetValue),
			Completed: completed,
			Claimable: gamify.Claimable(counter, ch.TargetValue, completed),
		})
	}
	return views, nil
}

func (s *challengeService) Claim(ctx context.Context, uid string, challengeID uint64) (*ClaimResult, error) {
	ch, err := s.challenges.FindByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := s.now()
	if now.Before(ch.StartsAt) || !now.Before(ch.EndsAt) {
		return nil, ErrNotClaimable
	}
	counter, err := s.counterFor(ctx, uid, ch)
	if err != nil {
		return nil, err
	}
	if counter < ch.TargetValue {
		return nil, ErrNotClaimable
	}

	// The unique (uid, challenge) index makes this the single claim gate;
	// the reward is credited only on the insert that actually won.
	err = s.challenges.CreateCompletion(ctx, &model.ChallengeCompletion{UID: uid, ChallengeID: challengeID})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}
	s.hub.Publish(realtime.ChangeEvent{Table: "challenge_completions", Type: realtime.ChangeInsert, UID: uid})

	balance, err := s.progress.CreditSeeds(ctx, uid, ch.SeedReward)
	if err != nil {
		log.Printf("[challenge] uid=%s challenge=%d stage=credit_fail err=%v", uid, challengeID, err)
	}
	result := &ClaimResult{ChallengeID: challengeID, SeedsEarned: ch.SeedReward, SeedBalance: balance}

	s.notify.Dispatch(ctx, NotificationEvent{
		UID:       uid,
		Category:  gamify.CategoryChallenge,
		Title:     "Challenge complete: " + ch.Title,
		Message:   fmt.Sprintf("You earned %d seeds.", ch.SeedReward),
		DedupeKey: fmt.Sprintf("challenge:claim:%d", challengeID),
	})

	granted, err := s.badges.EvaluateAndGrant(ctx, uid)
	if err != nil {
		log.Printf("[challenge] uid=%s challenge=%d stage=badges_fail err=%v", uid, challengeID, err)
	}
	result.Badges = granted
	return result, nil
}
