package gamify

import "testing"

func TestNewlyEarnedSkipsOwned(t *testing.T) {
	stats := UserStats{TreesPlanted: 12}
	owned := map[string]bool{"First Sprout": true}
	earned := NewlyEarned(stats, owned)
	names := map[string]bool{}
	for _, def := range earned {
		names[def.Name] = true
	}
	if names["First Sprout"] {
		t.Fatal("owned badge must not be re-earned")
	}
	if !names["Grove Keeper"] {
		t.Fatalf("expected Grove Keeper at 12 trees, got %v", names)
	}
}

func TestTreeMilestoneBadge(t *testing.T) {
	tests := []struct {
		count int64
		name  string
		ok    bool
	}{
		{1, "First Sprout", true},
		{10, "Grove Keeper", true},
		{50, "Forest Guardian", true},
		{100, "Canopy Centurion", true},
		{2, "", false},
		{99, "", false},
	}
	for _, tt := range tests {
		def, ok := TreeMilestoneBadge(tt.count)
		if ok != tt.ok || def.Name != tt.name {
			t.Fatalf("count=%d got=(%q,%v) want=(%q,%v)", tt.count, def.Name, ok, tt.name, tt.ok)
		}
	}
}
