package gamify

import (
	"fmt"
	"sort"

	"github.com/sproutly/sproutly-backend/internal/model"
)

type AlertType string

const (
	AlertLowScore          AlertType = "low_score"
	AlertSevereIssues      AlertType = "severe_issues"
	AlertUnresolvedBuildup AlertType = "unresolved_buildup"
	AlertRecurringDisease  AlertType = "recurring_disease"
)

// HealthAlert is derived, never persisted. Its identity is the deterministic
// Key, so recomputation naturally deduplicates.
type HealthAlert struct {
	Type        AlertType `json:"type"`
	PlantName   string    `json:"plantName"`
	DiseaseName string    `json:"diseaseName,omitempty"`
	Severity    string    `json:"severity"` // warning or critical
	Message     string    `json:"message"`
}

// Key is the alert identity: type:plant, plus the disease name for
// recurring-disease alerts.
func (a HealthAlert) Key() string {
	if a.Type == AlertRecurringDisease {
		return string(a.Type) + ":" + a.PlantName + ":" + a.DiseaseName
	}
	return string(a.Type) + ":" + a.PlantName
}

// HealthReport summarizes one plant's diagnosis history.
type HealthReport struct {
	PlantName        string `json:"plantName"`
	Score            int    `json:"score"`
	TotalIssues      int    `json:"totalIssues"`
	SevereIssues     int    `json:"severeIssues"`
	ResolvedIssues   int    `json:"resolvedIssues"`
	UnresolvedIssues int    `json:"unresolvedIssues"`
}

// HealthScore is clamp(0,100, 100 - 5*total - 10*severe + 3*resolved).
func HealthScore(totalIssues, severeIssues, resolvedIssues int) int {
	score := 100 - 5*totalIssues - 10*severeIssues + 3*resolvedIssues
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// HealthReports aggregates the diagnosis log per plant, sorted by name.
func HealthReports(diagnoses []model.DiseaseDiagnosis) []HealthReport {
	byPlant := map[string]*HealthReport{}
	for _, d := range diagnoses {
		r, ok := byPlant[d.PlantName]
		if !ok {
			r = &HealthReport{PlantName: d.PlantName}
			byPlant[d.PlantName] = r
		}
		r.TotalIssues++
		if d.Severity == model.SeveritySevere {
			r.SevereIssues++
		}
		if d.IsResolved {
			r.ResolvedIssues++
		} else {
			r.UnresolvedIssues++
		}
	}
	reports := make([]HealthReport, 0, len(byPlant))
	for _, r := range byPlant {
		r.Score = HealthScore(r.TotalIssues, r.SevereIssues, r.ResolvedIssues)
		reports = append(reports, *r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].PlantName < reports[j].PlantName })
	return reports
}

// EvaluateHealth runs all four independent alert checks over the diagnosis
// log. Checks may co-fire for the same plant.
func EvaluateHealth(diagnoses []model.DiseaseDiagnosis) []HealthAlert {
	var alerts []HealthAlert

	for _, r := range HealthReports(diagnoses) {
		if r.Score < 50 {
			severity := "warning"
			if r.Score < 30 {
				severity = "critical"
			}
			alerts = append(alerts, HealthAlert{
				Type:      AlertLowScore,
				PlantName: r.PlantName,
				Severity:  severity,
				Message:   fmt.Sprintf("%s health dropped to %d", r.PlantName, r.Score),
			})
		}
		if r.SevereIssues >= 2 {
			alerts = append(alerts, HealthAlert{
				Type:      AlertSevereIssues,
				PlantName: r.PlantName,
				Severity:  "critical",
				Message:   fmt.Sprintf("%s has %d severe issues", r.PlantName, r.SevereIssues),
			})
		}
		if r.UnresolvedIssues >= 3 {
			alerts = append(alerts, HealthAlert{
				Type:      AlertUnresolvedBuildup,
				PlantName: r.PlantName,
				Severity:  "warning",
				Message:   fmt.Sprintf("%s has %d unresolved issues", r.PlantName, r.UnresolvedIssues),
			})
		}
	}

	type pair struct{ plant, disease string }
	counts := map[pair]int{}
	for _, d := range diagnoses {
		if d.DiseaseName == "" {
			continue
		}
		counts[pair{d.PlantName, d.DiseaseName}]++
	}
	pairs := make([]pair, 0, len(counts))
	for p := range counts {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].plant != pairs[j].plant {
			return pairs[i].plant < pairs[j].plant
		}
		return pairs[i].disease < pairs[j].disease
	})
	for _, p := range pairs {
		if n := counts[p]; n >= 2 {
			alerts = append(alerts, HealthAlert{
				Type:        AlertRecurringDisease,
				PlantName:   p.plant,
				DiseaseName: p.disease,
				Severity:    "warning",
				Message:     fmt.Sprintf("%s appeared %d times on %s", p.disease, n, p.plant),
			})
		}
	}
	return alerts
}
