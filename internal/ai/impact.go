package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sproutly/sproutly-backend/internal/plantctx"
	"google.golang.org/genai"
)

// TreeImpact is the per-tree environmental estimate stored immutably on the
// planted tree at creation time.
type TreeImpact struct {
	CO2Kg     float64 `json:"co2Kg"`
	O2LPerDay float64 `json:"o2LPerDay"`
	AreaM2    float64 `json:"areaM2"`
}

// DefaultTreeImpact is a conservative average young-tree estimate, used
// whenever the model call or parse fails so planting never blocks on the AI.
var DefaultTreeImpact = TreeImpact{CO2Kg: 21, O2LPerDay: 118, AreaM2: 2.5}

type ImpactClient struct {
	model string
}

func NewImpactClient(model string) *ImpactClient {
	if model == "" {
		model = os.Getenv("GEMINI_MODEL")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &ImpactClient{model: model}
}

// EstimateTreeImpact asks Gemini for a yearly CO2 / daily O2 / canopy area
// estimate for one tree. Any failure returns DefaultTreeImpact together with
// the error so the caller can log and keep going.
func (c *ImpactClient) EstimateTreeImpact(ctx context.Context, species, location string) (TreeImpact, error) {
	rid := plantctx.RID(ctx)
	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[impact] rid=%s stage=client_init err=%v", rid, err)
		return DefaultTreeImpact, err
	}

	prompt := `You estimate the environmental impact of a single young tree.
Given a species and a rough location, return ONE JSON object and nothing else:
{"co2Kg": <yearly CO2 absorption in kg>, "o2LPerDay": <daily oxygen output in liters>, "areaM2": <canopy area in square meters>}
Use realistic averages for a young specimen. If the species is unknown, use a generic broadleaf tree. No prose, no markdown fences.`

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromText(fmt.Sprintf("Species: %s\nLocation: %s", species, location)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	genStart := time.Now()
	log.Printf("[impact] rid=%s stage=gemini_start model=%s species=%q", rid, c.model, species)
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[impact] rid=%s stage=gemini_fail model=%s err=%v", rid, c.model, err)
		return DefaultTreeImpact, fmt.Errorf("gemini generate: %w", err)
	}
	rawText := res.Text()
	impact, err := ParseImpact(rawText)
	if err != nil {
		log.Printf("[impact] rid=%s stage=parse_fail len=%d err=%v", rid, len(rawText), err)
		return DefaultTreeImpact, err
	}
	log.Printf("[impact] rid=%s stage=parse_ok co2=%.2f o2=%.1f area=%.2f genMs=%d totalMs=%d",
		rid, impact.CO2Kg, impact.O2LPerDay, impact.AreaM2,
		time.Since(genStart).Milliseconds(), time.Since(start).Milliseconds())
	return impact, nil
}
