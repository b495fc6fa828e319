package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sproutly/sproutly-backend/internal/ai"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/plantctx"
	"github.com/sproutly/sproutly-backend/internal/realtime"
	"github.com/sproutly/sproutly-backend/internal/repository"
)

// Seeds credited for the act of planting, before any badge rewards.
const plantSeedAward = 10

// ImpactEstimator abstracts the Gemini impact client so the planting flow is
// testable without a network.
type ImpactEstimator interface {
	EstimateTreeImpact(ctx context.Context, species, location string) (ai.TreeImpact, error)
}

type PlantInput struct {
	Name     string  `json:"name"`
	Species  string  `json:"species"`
	Location string  `json:"location"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Share    bool    `json:"share"`
	Caption  string  `json:"caption"`
}

// PlantSummary is the single response of the planting workflow; the client
// renders the whole celebration from it without follow-up requests.
type PlantSummary struct {
	Success      bool               `json:"success"`
	Tree         *model.PlantedTree `json:"tree"`
	SeedsAwarded int64              `json:"seedsAwarded"`
	SeedBalance  int64              `json:"seedBalance"`
	Achievements []string           `json:"achievements"`
	TotalTrees   int64              `json:"totalTrees"`
	Analytics    ai.TreeImpact      `json:"analytics"`
	Shared       bool               `json:"shared"`
}

type PlantService interface {
	Plant(ctx context.Context, uid string, in PlantInput) (*PlantSummary, error)
	ListTrees(ctx context.Context, uid string, limit int) ([]model.PlantedTree, error)
}

type plantService struct {
	trees     repository.TreeRepository
	community repository.CommunityRepository
	progress  ProgressService
	badges    BadgeService
	estimator ImpactEstimator
	hub       *realtime.Hub
}

func NewPlantService(
	trees repository.TreeRepository,
	community repository.CommunityRepository,
	progress ProgressService,
	badges BadgeService,
	estimator ImpactEstimator,
	hub *realtime.Hub,
) PlantService {
	return &plantService{
		trees:     trees,
		community: community,
		progress:  progress,
		badges:    badges,
		estimator: estimator,
		hub:       hub,
	}
}

func (s *plantService) ListTrees(ctx context.Context, uid string, limit int) ([]model.PlantedTree, error) {
	return s.trees.ListByUser(ctx, uid, limit)
}

// Plant runs the full planting workflow: estimate impact, record the tree,
// apply aggregate impact, credit seeds, evaluate badges and optionally share
// to the community feed. Only the tree insert itself is fatal; everything
// after it degrades to a partial summary rather than losing the tree.
func (s *plantService) Plant(ctx context.Context, uid string, in PlantInput) (*PlantSummary, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	rid := plantctx.RID(ctx)

	impact := ai.DefaultTreeImpact
	if s.estimator != nil {
		est, err := s.estimator.EstimateTreeImpact(ctx, in.Species, in.Location)
		if err != nil {
			log.Printf("[plant] rid=%s uid=%s stage=estimate_fallback err=%v", rid, uid, err)
		} else {
			impact = est
		}
	}

	tree := &model.PlantedTree{
		UID:       uid,
		Name:      name,
		Species:   strings.TrimSpace(in.Species),
		Location:  strings.TrimSpace(in.Location),
		PhotoURL:  in.PhotoURL,
		CO2Kg:     impact.CO2Kg,
		O2LPerDay: impact.O2LPerDay,
		AreaM2:    impact.AreaM2,
	}
	if err := s.trees.Create(ctx, tree); err != nil {
		return nil, err
	}
	ctx = plantctx.WithTreeID(ctx, tree.ID)
	s.hub.Publish(realtime.ChangeEvent{Table: "planted_trees", Type: realtime.ChangeInsert, UID: uid, New: tree})

	summary := &PlantSummary{Success: true, Tree: tree, Analytics: impact}

	if _, err := s.progress.ApplyImpact(ctx, uid, repository.ImpactDelta{
		Trees:             1,
		CO2Reduced:        impact.CO2Kg,
		OxygenGenerated:   impact.O2LPerDay,
		GreenAreaExpanded: impact.AreaM2,
	}); err != nil {
		log.Printf("[plant] rid=%s uid=%s tree=%d stage=impact_fail err=%v", rid, uid, tree.ID, err)
	}

	balance, err := s.progress.CreditSeeds(ctx, uid, plantSeedAward)
	if err != nil {
		log.Printf("[plant] rid=%s uid=%s tree=%d stage=credit_fail err=%v", rid, uid, tree.ID, err)
	} else {
		summary.SeedsAwarded = plantSeedAward
		summary.SeedBalance = balance
	}

	total, err := s.trees.CountByUser(ctx, uid)
	if err != nil {
		log.Printf("[plant] rid=%s uid=%s tree=%d stage=count_fail err=%v", rid, uid, tree.ID, err)
	}
	summary.TotalTrees = total

	granted, err := s.badges.EvaluateAndGrant(ctx, uid)
	if err != nil {
		log.Printf("[plant] rid=%s uid=%s tree=%d stage=badges_fail err=%v", rid, uid, tree.ID, err)
	}
	summary.Achievements = granted

	if in.Share {
		body := strings.TrimSpace(in.Caption)
		if body == "" {
			body = fmt.Sprintf("Just planted %s! %d trees and counting.", name, total)
		}
		treeID := tree.ID
		post := &model.CommunityPost{UID: uid, Body: body, TreeID: &treeID}
		if err := s.community.CreatePost(ctx, post); err != nil {
			log.Printf("[plant] rid=%s uid=%s tree=%d stage=share_fail err=%v", rid, uid, tree.ID, err)
		} else {
			summary.Shared = true
			s.hub.Publish(realtime.ChangeEvent{Table: "community_posts", Type: realtime.ChangeInsert, UID: uid, New: post})
		}
	}
	return summary, nil
}
