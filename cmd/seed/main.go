package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sproutly/sproutly-backend/internal/config"
	"github.com/sproutly/sproutly-backend/internal/db"
	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Challenge{}, &model.ShopItem{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := seedChallenges(ctx, gdb); err != nil {
		return err
	}
	if err := seedShopItems(ctx, gdb); err != nil {
		return err
	}
	log.Printf("seed complete")
	return nil
}

// seedChallenges creates this period's challenge set if it does not exist
// yet; re-running within the same period is a no-op.
func seedChallenges(ctx context.Context, gdb *gorm.DB) error {
	now := time.Now()
	dayStart := gamify.PeriodStart(model.ChallengePeriodDaily, now)
	weekStart := gamify.PeriodStart(model.ChallengePeriodWeekly, now)

	challenges := []model.Challenge{
		{
			Title: "Plant 3 trees today", Period: model.ChallengePeriodDaily,
			Metric: model.MetricTrees, TargetValue: 3, SeedReward: 30,
			StartsAt: dayStart, EndsAt: dayStart.AddDate(0, 0, 1),
		},
		{
			Title: "Finish a quiz", Period: model.ChallengePeriodDaily,
			Metric: model.MetricQuizzesCompleted, TargetValue: 1, SeedReward: 15,
			StartsAt: dayStart, EndsAt: dayStart.AddDate(0, 0, 1),
		},
		{
			Title: "Plant 10 trees this week", Period: model.ChallengePeriodWeekly,
			Metric: model.MetricTrees, TargetValue: 10, SeedReward: 120,
			StartsAt: weekStart, EndsAt: weekStart.AddDate(0, 0, 7),
		},
		{
			Title: "Score 80 on a quiz", Period: model.ChallengePeriodWeekly,
			Metric: model.MetricQuizScore, TargetValue: 80, SeedReward: 60,
			StartsAt: weekStart, EndsAt: weekStart.AddDate(0, 0, 7),
		},
		{
			Title: "Play 5 minigames this week", Period: model.ChallengePeriodWeekly,
			Metric: model.MetricGamesPlayed, TargetValue: 5, SeedReward: 50,
			StartsAt: weekStart, EndsAt: weekStart.AddDate(0, 0, 7),
		},
	}

	for _, ch := range challenges {
		var existing model.Challenge
		err := gdb.WithContext(ctx).
			Where("title = ? AND starts_at = ?", ch.Title, ch.StartsAt).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := gdb.WithContext(ctx).Create(&ch).Error; err != nil {
			return fmt.Errorf("create challenge %q: %w", ch.Title, err)
		}
		log.Printf("seeded challenge %q (%s)", ch.Title, ch.Period)
	}
	return nil
}

func seedShopItems(ctx context.Context, gdb *gorm.DB) error {
	items := []model.ShopItem{
		{Slug: "clay-pot", Title: "Clay Pot", Description: "A simple clay pot for your virtual garden.", PriceSeeds: 50, Category: "decoration"},
		{Slug: "golden-pot", Title: "Golden Pot", Description: "Show off a streak worth of seeds.", PriceSeeds: 300, Category: "decoration"},
		{Slug: "garden-gnome", Title: "Garden Gnome", Description: "Keeps watch over your plants.", PriceSeeds: 150, Category: "decoration"},
		{Slug: "rainbow-watering-can", Title: "Rainbow Watering Can", Description: "Waters plants in style.", PriceSeeds: 200, Category: "tool"},
		{Slug: "butterfly-swarm", Title: "Butterfly Swarm", Description: "Ambient butterflies for your garden view.", PriceSeeds: 400, Category: "effect"},
		{Slug: "forest-theme", Title: "Forest Theme", Description: "A deep green look for the whole app.", PriceSeeds: 500, Category: "theme"},
	}

	for _, it := range items {
		var existing model.ShopItem
		err := gdb.WithContext(ctx).Where("slug = ?", it.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := gdb.WithContext(ctx).Create(&it).Error; err != nil {
			return fmt.Errorf("create shop item %q: %w", it.Slug, err)
		}
		log.Printf("seeded shop item %q", it.Slug)
	}
	return nil
}
