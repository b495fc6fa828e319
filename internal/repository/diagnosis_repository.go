package repository

import (
	"context"

	"github.com/sproutly/sproutly-backend/internal/model"
	"gorm.io/gorm"
)

type DiagnosisRepository interface {
	Create(ctx context.Context, d *model.DiseaseDiagnosis) error
	ListByUser(ctx context.Context, uid string) ([]model.DiseaseDiagnosis, error)
	Resolve(ctx context.Context, id uint64, uid string) (int64, error)
	SetDB(db *gorm.DB)
}

type diagnosisRepository struct {
	db *gorm.DB
}

func NewDiagnosisRepository(db *gorm.DB) DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

func (r *diagnosisRepository) Create(ctx context.Context, d *model.DiseaseDiagnosis) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *diagnosisRepository) ListByUser(ctx context.Context, uid string) ([]model.DiseaseDiagnosis, error) {
	var list []model.DiseaseDiagnosis
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Resolve flips is_resolved; only the owner may do it. Returns rows
// affected so the caller can distinguish not-found from no-op.
func (r *diagnosisRepository) Resolve(ctx context.Context, id uint64, uid string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.DiseaseDiagnosis{}).
		Where("id = ? AND uid = ? AND is_resolved = false", id, uid).
		Update("is_resolved", true)
	return res.RowsAffected, res.Error
}

func (r *diagnosisRepository) SetDB(db *gorm.DB) {
	r.db = db
}
