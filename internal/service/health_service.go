package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sproutly/sproutly-backend/internal/gamify"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

// HealthService owns the diagnosis log. Alerts and reports are always
// derived from it on read, never stored.
type HealthService interface {
	AddDiagnosis(ctx context.Context, uid string, d *model.DiseaseDiagnosis) error
	Resolve(ctx context.Context, uid string, id uint64) error
	Reports(ctx context.Context, uid string) ([]gamify.HealthReport, error)
	Alerts(ctx context.Context, uid string) ([]gamify.HealthAlert, error)
	Diagnoses(ctx context.Context, uid string) ([]model.DiseaseDiagnosis, error)
}

type healthService struct {
	repo   repository.DiagnosisRepository
	notify NotificationService
	hub    *realtime.Hub
}

func NewHealthService(repo repository.DiagnosisRepository, notify NotificationService, hub *realtime.Hub) HealthService {
	return &healthService{repo: repo, notify: notify, hub: hub}
}

func validSeverity(s model.DiagnosisSeverity) bool {
	switch s {
	case model.SeverityMild, model.SeverityModerate, model.SeveritySevere:
		return true
	}
	return false
}

func (s *healthService) AddDiagnosis(ctx context.Context, uid string, d *model.DiseaseDiagnosis) error {
	d.UID = uid
	d.PlantName = strings.TrimSpace(d.PlantName)
	d.DiseaseName = strings.TrimSpace(d.DiseaseName)
	d.IsResolved = false
	if d.PlantName == "" {
		return errors.New("plant name is required")
	}
	if !validSeverity(d.Severity) {
		return errors.New("severity must be mild, moderate or severe")
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}
	s.hub.Publish(realtime.ChangeEvent{Table: "disease_diagnoses", Type: realtime.ChangeInsert, UID: uid, New: d})

	// Alerts crossed by this diagnosis go out immediately; the dedupe key
	// absorbs the reconciler re-deriving the same crossing.
	alerts, err := s.Alerts(ctx, uid)
	if err == nil {
		for _, a := range alerts {
			s.notify.HealthAlert(ctx, uid, a)
		}
	}
	return nil
}

func (s *healthService) Resolve(ctx context.Context, uid string, id uint64) error {
	rows, err := s.repo.Resolve(ctx, id, uid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.hub.Publish(realtime.ChangeEvent{Table: "disease_diagnoses", Type: realtime.ChangeUpdate, UID: uid})
	return nil
}

func (s *healthService) Diagnoses(ctx context.Context, uid string) ([]model.DiseaseDiagnosis, error) {
	return s.repo.ListByUser(ctx, uid)
}

func (s *healthService) Reports(ctx context.Context, uid string) ([]gamify.HealthReport, error) {
	list, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return gamify.HealthReports(list), nil
}

func (s *healthService) Alerts(ctx context.Context, uid string) ([]gamify.HealthAlert, error) {
	list, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return gamify.EvaluateHealth(list), nil
}
