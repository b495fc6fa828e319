package gamify

import (
	"strings"
	"testing"

	"github.com/sproutly/sproutly-backend/internal/model"
)

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		severe   int
		resolved int
		want     int
	}{
		{"mixed", 2, 1, 1, 83},
		{"five mild", 5, 0, 0, 75},
		{"twelve issues", 12, 0, 0, 40},
		{"fifteen issues", 15, 0, 0, 25},
		{"floor at zero", 30, 5, 0, 0},
		{"cap at hundred", 0, 0, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealthScore(tt.total, tt.severe, tt.resolved); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func diag(plant, disease string, severity model.DiagnosisSeverity, resolved bool) model.DiseaseDiagnosis {
	return model.DiseaseDiagnosis{PlantName: plant, DiseaseName: disease, Severity: severity, IsResolved: resolved}
}

func alertsOfType(alerts []HealthAlert, typ AlertType) []HealthAlert {
	var out []HealthAlert
	for _, a := range alerts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func TestEvaluateHealthNoAlertAboveThreshold(t *testing.T) {
	// score 83, severe < 2: nothing fires
	diagnoses := []model.DiseaseDiagnosis{
		diag("Fern", "Rust", model.SeveritySevere, false),
		diag("Fern", "Rot", model.SeverityMild, true),
	}
	if alerts := EvaluateHealth(diagnoses); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %v", alerts)
	}
}

func TestEvaluateHealthLowScoreSeverity(t *testing.T) {
	var warning []model.DiseaseDiagnosis
	for i := 0; i < 12; i++ {
		warning = append(warning, diag("Fig", "", model.SeverityMild, true))
	}
	// 12 resolved mild issues: score 100-60+36=76, no alert; use unresolved
	warning = nil
	for i := 0; i < 12; i++ {
		warning = append(warning, diag("Fig", "", model.SeverityMild, false))
	}
	alerts := EvaluateHealth(warning)
	low := alertsOfType(alerts, AlertLowScore)
	if len(low) != 1 || low[0].Severity != "warning" {
		t.Fatalf("want one warning low_score alert, got %v", alerts)
	}

	var critical []model.DiseaseDiagnosis
	for i := 0; i < 15; i++ {
		critical = append(critical, diag("Fig", "", model.SeverityMild, false))
	}
	alerts = EvaluateHealth(critical)
	low = alertsOfType(alerts, AlertLowScore)
	if len(low) != 1 || low[0].Severity != "critical" {
		t.Fatalf("want one critical low_score alert, got %v", alerts)
	}
}

func TestEvaluateHealthRecurringDisease(t *testing.T) {
	once := []model.DiseaseDiagnosis{diag("Tomato", "Blight", model.SeverityMild, true)}
	if got := alertsOfType(EvaluateHealth(once), AlertRecurringDisease); len(got) != 0 {
		t.Fatalf("single occurrence must not alert, got %v", got)
	}

	twice := append(once, diag("Tomato", "Blight", model.SeverityMild, false))
	got := alertsOfType(EvaluateHealth(twice), AlertRecurringDisease)
	if len(got) != 1 {
		t.Fatalf("want exactly one recurring alert, got %v", got)
	}
	if !strings.Contains(got[0].Message, "2 times") {
		t.Fatalf("message must carry the count, got %q", got[0].Message)
	}
	if got[0].Key() != "recurring_disease:Tomato:Blight" {
		t.Fatalf("unexpected key %q", got[0].Key())
	}
}

func TestEvaluateHealthChecksCoFire(t *testing.T) {
	var diagnoses []model.DiseaseDiagnosis
	for i := 0; i < 3; i++ {
		diagnoses = append(diagnoses, diag("Oak", "Mildew", model.SeveritySevere, false))
	}
	alerts := EvaluateHealth(diagnoses)
	for _, typ := range []AlertType{AlertLowScore, AlertSevereIssues, AlertUnresolvedBuildup, AlertRecurringDisease} {
		if len(alertsOfType(alerts, typ)) != 1 {
			t.Fatalf("expected %s to fire once, got %v", typ, alerts)
		}
	}
}

func TestHealthAlertKeyDeterministic(t *testing.T) {
	a := HealthAlert{Type: AlertLowScore, PlantName: "Rose"}
	b := HealthAlert{Type: AlertLowScore, PlantName: "Rose", Message: "different"}
	if a.Key() != b.Key() {
		t.Fatalf("keys must ignore message: %q vs %q", a.Key(), b.Key())
	}
}
