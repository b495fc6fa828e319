package ai

import "testing"

func TestParseImpact(t *testing.T) {
	got, err := ParseImpact(`{"co2Kg": 22.5, "o2LPerDay": 110, "areaM2": 3}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CO2Kg != 22.5 || got.O2LPerDay != 110 || got.AreaM2 != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseImpactFenced(t *testing.T) {
	text := "```json\n{\"co2Kg\": 18, \"o2LPerDay\": 95.5, \"areaM2\": 2.2}\n```"
	got, err := ParseImpact(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.O2LPerDay != 95.5 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseImpactRejectsGarbage(t *testing.T) {
	for _, text := range []string{
		"no json here",
		`{"co2Kg": -5, "o2LPerDay": 100, "areaM2": 2}`,
		`{"co2Kg": 0, "o2LPerDay": 0, "areaM2": 0}`,
	} {
		if _, err := ParseImpact(text); err == nil {
			t.Fatalf("expected parse failure for %q", text)
		}
	}
}
