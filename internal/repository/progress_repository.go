package repository

import (
	"context"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

// ImpactDelta is the additive part of a progress update. Seed points are
// deliberately not here; they move through the explicit credit/set/spend
// operations below.
type ImpactDelta struct {
	Trees             int64
	CO2Reduced        float64
	OxygenGenerated   float64
	WaterSaved        float64
	GreenAreaExpanded float64
	EnergySaved       float64
}

type ProgressRepository interface {
	Get(ctx context.Context, uid string) (*model.UserProgress, error)
	ApplyImpact(ctx context.Context, uid string, d ImpactDelta) error
	CreditSeeds(ctx context.Context, uid string, amount int64) (int64, error)
	SetSeeds(ctx context.Context, uid string, amount int64) error
	SpendSeeds(ctx context.Context, uid string, amount int64) error
	SetDB(db *gorm.DB)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, uid string) (*model.UserProgress, error) {
	var p model.UserProgress
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		FirstOrCreate(&p, &model.UserProgress{UID: uid}).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ApplyImpact(ctx context.Context, uid string, d ImpactDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.UserProgress
		if err := tx.Where("uid = ?", uid).
			FirstOrCreate(&p, &model.UserProgress{UID: uid}).Error; err != nil {
			return err
		}
		return tx.Model(&model.UserProgress{}).
			Where("uid = ?", uid).
			Updates(map[string]interface{}{
				"trees_planted":       gorm.Expr("trees_planted + ?", d.Trees),
				"co2_reduced":         gorm.Expr("co2_reduced + ?", d.CO2Reduced),
				"oxygen_generated":    gorm.Expr("oxygen_generated + ?", d.OxygenGenerated),
				"water_saved":         gorm.Expr("water_saved + ?", d.WaterSaved),
				"green_area_expanded": gorm.Expr("green_area_expanded + ?", d.GreenAreaExpanded),
				"energy_saved":        gorm.Expr("energy_saved + ?", d.EnergySaved),
			}).Error
	})
}

func (r *progressRepository) CreditSeeds(ctx context.Context, uid string, amount int64) (int64, error) {
	if amount <= 0 {
		p, err := r.Get(ctx, uid)
		if err != nil {
			return 0, err
		}
		return p.SeedPoints, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.UserProgress
		if err := tx.Where("uid = ?", uid).
			FirstOrCreate(&p, &model.UserProgress{UID: uid}).Error; err != nil {
			return err
		}
		return tx.Model(&model.UserProgress{}).
			Where("uid = ?", uid).
			Update("seed_points", gorm.Expr("seed_points + ?", amount)).Error
	})
	if err != nil {
		return 0, err
	}
	p, err := r.Get(ctx, uid)
	if err != nil {
		return 0, err
	}
	return p.SeedPoints, nil
}

func (r *progressRepository) SetSeeds(ctx context.Context, uid string, amount int64) error {
	if amount < 0 {
		amount = 0
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.UserProgress
		if err := tx.Where("uid = ?", uid).
			FirstOrCreate(&p, &model.UserProgress{UID: uid}).Error; err != nil {
			return err
		}
		return tx.Model(&model.UserProgress{}).
			Where("uid = ?", uid).
			Update("seed_points", amount).Error
	})
}

// SpendSeeds decrements only when the balance covers the amount; zero rows
// affected means the purchase must be rejected.
func (r *progressRepository) SpendSeeds(ctx context.Context, uid string, amount int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.UserProgress{}).
		Where("uid = ? AND seed_points >= ?", uid, amount).
		Update("seed_points", gorm.Expr("seed_points - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *progressRepository) SetDB(db *gorm.DB) {
	r.db = db
}
