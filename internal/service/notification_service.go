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

// NotificationEvent is one logical user-facing event. The dedupe key makes
// re-derived crossings at-most-once in the persisted log.
type NotificationEvent struct {
	UID       string
	Category  gamify.Category
	Title     string
	Message   string
	DedupeKey string
}

type NotificationService interface {
	// Dispatch persists the event (deduplicated) and, when preferences
	// allow it right now, pushes a toast frame onto the realtime stream.
	// Best-effort: errors are logged, never returned, so write paths are
	// not broken by a failed notification.
	Dispatch(ctx context.Context, ev NotificationEvent)
	List(ctx context.Context, uid string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, uid string, id uint64) error
	MarkAllRead(ctx context.Context, uid string) error

	// realtime.Notifier
	StreakMilestone(ctx context.Context, uid string, days int)
	MonthStreakIncreased(ctx context.Context, uid string, months int)
	HealthAlert(ctx context.Context, uid string, alert gamify.HealthAlert)
	RankChanged(ctx context.Context, uid string, prev, next int)
}

type notificationService struct {
	repo  repository.NotificationRepository
	prefs repository.PreferenceRepository
	hub   *realtime.Hub
	now   func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, prefs repository.PreferenceRepository, hub *realtime.Hub) NotificationService {
	return &notificationService{repo: repo, prefs: prefs, hub: hub, now: time.Now}
}

func (s *notificationService) Dispatch(ctx context.Context, ev NotificationEvent) {
	if ev.UID == "" || !ev.Category.Valid() {
		return
	}
	n := &model.Notification{
		UID:      ev.UID,
		Category: string(ev.Category),
		Title:    ev.Title,
		Message:  ev.Message,
	}
	if ev.DedupeKey != "" {
		key := ev.DedupeKey
		n.DedupeKey = &key
	}
	created, err := s.repo.CreateIfAbsent(ctx, n)
	if err != nil {
		log.Printf("[notify] uid=%s category=%s stage=persist_fail err=%v", ev.UID, ev.Category, err)
		return
	}
	if !created {
		// Same logical event re-derived; side effects already happened.
		return
	}

	prefs, err := s.prefs.Get(ctx, ev.UID)
	if err != nil {
		log.Printf("[notify] uid=%s category=%s stage=prefs_fail err=%v", ev.UID, ev.Category, err)
		return
	}
	if !ShouldNotify(prefs, ev.Category, s.now()) {
		return
	}
	if s.hub != nil {
		meta := ev.Category.Meta()
		frame := map[string]any{
			"id":       n.ID,
			"category": string(ev.Category),
			"title":    ev.Title,
			"message":  ev.Message,
			"icon":     meta.Icon,
			"color":    meta.Color,
		}
		if prefs.SoundEnabled {
			frame["sound"] = meta.Sound
		}
		s.hub.Publish(realtime.ChangeEvent{Table: "notifications", Type: realtime.ChangeInsert, UID: ev.UID, New: frame})
	}
}

func (s *notificationService) List(ctx context.Context, uid string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if uid == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByUser(ctx, uid, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, uid)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkRead(ctx context.Context, uid string, id uint64) error {
	if uid == "" || id == 0 {
		return nil
	}
	return s.repo.MarkRead(ctx, uid, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	return s.repo.MarkAllRead(ctx, uid)
}

func (s *notificationService) StreakMilestone(ctx context.Context, uid string, days int) {
	s.Dispatch(ctx, NotificationEvent{
		UID:       uid,
		Category:  gamify.CategoryStreak,
		Title:     fmt.Sprintf("%d-day streak!", days),
		Message:   fmt.Sprintf("You've been active %d days in a row. Keep it growing!", days),
		DedupeKey: fmt.Sprintf("streak:day:%d:%s", days, s.now().Format(gamify.DayKeyLayout)),
	})
}

func (s *notificationService) MonthStreakIncreased(ctx context.Context, uid string, months int) {
	s.Dispatch(ctx, NotificationEvent{
		UID:       uid,
		Category:  gamify.CategoryStreak,
		Title:     fmt.Sprintf("%d months strong", months),
		Message:   fmt.Sprintf("Your planting streak reached %d consecutive months.", months),
		DedupeKey: fmt.Sprintf("streak:month:%d:%s", months, s.now().Format(gamify.MonthKeyLayout)),
	})
}

func (s *notificationService) HealthAlert(ctx context.Context, uid string, alert gamify.HealthAlert) {
	s.Dispatch(ctx, NotificationEvent{
		UID:       uid,
		Category:  gamify.CategoryHealth,
		Title:     "Plant health alert",
		Message:   alert.Message,
		DedupeKey: "health:" + alert.Key(),
	})
}

func (s *notificationService) RankChanged(ctx context.Context, uid string, prev, next int) {
	title := fmt.Sprintf("You climbed to #%d", next)
	if gamify.TopThree(next) {
		title = fmt.Sprintf("Top %d on the leaderboard!", next)
	}
	s.Dispatch(ctx, NotificationEvent{
		UID:       uid,
		Category:  gamify.CategoryLeaderboard,
		Title:     title,
		Message:   fmt.Sprintf("Leaderboard rank moved from #%d to #%d.", prev, next),
		DedupeKey: fmt.Sprintf("leaderboard:rank:%d:%s", next, s.now().Format(gamify.DayKeyLayout)),
	})
}

// ShouldNotify applies quiet hours first, then the per-category toggle.
// A quiet window whose start is after its end wraps past midnight.
func ShouldNotify(p *model.NotificationPreferences, c gamify.Category, now time.Time) bool {
	if InQuietWindow(p.QuietStart, p.QuietEnd, now) {
		return false
	}
	switch c {
	case gamify.CategoryAchievement, gamify.CategoryReward:
		return p.AchievementsEnabled
	case gamify.CategoryLeaderboard:
		return p.LeaderboardEnabled
	case gamify.CategoryChallenge:
		return p.ChallengesEnabled
	case gamify.CategoryStreak:
		return p.StreakEnabled
	case gamify.CategoryCommunity:
		return p.CommunityEnabled
	case gamify.CategoryHealth:
		return true
	}
	return true
}

// InQuietWindow checks "HH:MM" bounds; an empty or equal pair disables the
// window, start > end wraps past midnight.
func InQuietWindow(start, end string, now time.Time) bool {
	s, okS := parseMinutes(start)
	e, okE := parseMinutes(end)
	if !okS || !okE || s == e {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	if s < e {
		return cur >= s && cur < e
	}
	return cur >= s || cur < e
}

func parseMinutes(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
