package gamify

import "testing"

func TestEveryCategoryHasMeta(t *testing.T) {
	for _, c := range AllCategories() {
		if !c.Valid() {
			t.Fatalf("category %q is missing presentation metadata", c)
		}
		meta := c.Meta()
		if meta.Icon == "" || meta.Color == "" || meta.Sound == "" {
			t.Fatalf("category %q has incomplete metadata: %+v", c, meta)
		}
	}
}

func TestUnknownCategoryInvalid(t *testing.T) {
	if Category("bogus").Valid() {
		t.Fatal("unknown category must be invalid")
	}
}
