package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

// BadgeService evaluates the fixed catalog against a fresh stats snapshot
// and grants whatever newly holds. Grants are idempotent through the
// (uid, name) unique index, so every write path may call EvaluateAndGrant
// after it commits.
type BadgeService interface {
	EvaluateAndGrant(ctx context.Context, uid string) ([]string, error)
	List(ctx context.Context, uid string) ([]model.Badge, error)
	StatsFor(ctx context.Context, uid string) (gamify.UserStats, error)
}

type badgeService struct {
	badges       repository.BadgeRepository
	achievements repository.AchievementRepository
	trees        repository.TreeRepository
	challenges   repository.ChallengeRepository
	games        repository.GameRepository
	community    repository.CommunityRepository
	progress     ProgressService
	notify       NotificationService
	hub          *realtime.Hub
	now          func() time.Time
}

func NewBadgeService(
	badges repository.BadgeRepository,
	achievements repository.AchievementRepository,
	trees repository.TreeRepository,
	challenges repository.ChallengeRepository,
	games repository.GameRepository,
	community repository.CommunityRepository,
	progress ProgressService,
	notify NotificationService,
	hub *realtime.Hub,
) BadgeService {
	return &badgeService{
		badges:       badges,
		achievements: achievements,
		trees:        trees,
		challenges:   challenges,
		games:        games,
		community:    community,
		progress:     progress,
		notify:       notify,
		hub:          hub,
		now:          time.Now,
	}
}

func (s *badgeService) List(ctx context.Context, uid string) ([]model.Badge, error) {
	return s.badges.ListByUser(ctx, uid)
}

func (s *badgeService) StatsFor(ctx context.Context, uid string) (gamify.UserStats, error) {
	var stats gamify.UserStats
	var err error

	if stats.TreesPlanted, err = s.trees.CountByUser(ctx, uid); err != nil {
		return stats, err
	}
	dayKeys, err := s.trees.DayKeys(ctx, uid)
	if err != nil {
		return stats, err
	}
	monthKeys, err := s.trees.MonthKeys(ctx, uid)
	if err != nil {
		return stats, err
	}
	now := s.now()
	stats.DayStreak = gamify.DayStreak(dayKeys, now)
	stats.MonthStreak = gamify.MonthStreak(monthKeys, now)

	if stats.ChallengesCompleted, err = s.challenges.CountCompletions(ctx, uid); err != nil {
		return stats, err
	}
	if stats.QuizzesCompleted, err = s.games.CountByUser(ctx, uid, model.GameKindQuiz); err != nil {
		return stats, err
	}
	if stats.GamesPlayed, err = s.games.CountByUser(ctx, uid, model.GameKindGame); err != nil {
		return stats, err
	}
	if stats.PostsShared, err = s.community.CountPostsByUser(ctx, uid); err != nil {
		return stats, err
	}
	if stats.SeedsLifetime, err = s.achievements.SumSeedsEarned(ctx, uid); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *badgeService) EvaluateAndGrant(ctx context.Context, uid string) ([]string, error) {
	stats, err := s.StatsFor(ctx, uid)
	if err != nil {
		return nil, err
	}
	owned, err := s.badges.NamesByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	var granted []string
	for _, def := range gamify.NewlyEarned(stats, owned) {
		created, err := s.badges.CreateIfAbsent(ctx, &model.Badge{UID: uid, Name: def.Name})
		if err != nil {
			return granted, err
		}
		if !created {
			// Raced with a concurrent grant of the same badge.
			continue
		}
		granted = append(granted, def.Name)
		s.hub.Publish(realtime.ChangeEvent{Table: "badges", Type: realtime.ChangeInsert, UID: uid})

		// The achievement log entry carries the seed reward; the credit
		// matches it exactly.
		if err := s.achievements.Create(ctx, &model.Achievement{
			UID:         uid,
			Text:        fmt.Sprintf("Earned the %q badge: %s", def.Name, def.Description),
			SeedsEarned: def.SeedReward,
		}); err != nil {
			log.Printf("[badge] uid=%s badge=%q stage=achievement_fail err=%v", uid, def.Name, err)
		}
		if def.SeedReward > 0 {
			if _, err := s.progress.CreditSeeds(ctx, uid, def.SeedReward); err != nil {
				log.Printf("[badge] uid=%s badge=%q stage=credit_fail err=%v", uid, def.Name, err)
			}
		}
		s.notify.Dispatch(ctx, NotificationEvent{
			UID:       uid,
			Category:  gamify.CategoryAchievement,
			Title:     "Badge earned: " + def.Name,
			Message:   def.Description,
			DedupeKey: "badge:" + def.Name,
		})
	}
	return granted, nil
}
