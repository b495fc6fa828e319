package gamify

// Category is the closed set of notification categories. Presentation
// metadata is mapped exhaustively in Meta; category_test.go fails when a
// new category is added without a mapping.
type Category string

const (
	CategoryAchievement Category = "achievement"
	CategoryLeaderboard Category = "leaderboard"
	CategoryChallenge   Category = "challenge"
	CategoryStreak      Category = "streak"
	CategoryCommunity   Category = "community"
	CategoryReward      Category = "reward"
	CategoryHealth      Category = "health"
)

// AllCategories lists every category for exhaustiveness checks.
func AllCategories() []Category {
	return []Category{
		CategoryAchievement,
		CategoryLeaderboard,
		CategoryChallenge,
		CategoryStreak,
		CategoryCommunity,
		CategoryReward,
		CategoryHealth,
	}
}

// CategoryMeta carries the per-category presentation affordances.
type CategoryMeta struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Sound string `json:"sound"`
}

// Meta returns presentation metadata for a category. Unknown categories get
// a zero value, which Valid guards against at the dispatch boundary.
func (c Category) Meta() CategoryMeta {
	switch c {
	case CategoryAchievement:
		return CategoryMeta{Icon: "trophy", Color: "#f5a623", Sound: "fanfare"}
	case CategoryLeaderboard:
		return CategoryMeta{Icon: "podium", Color: "#4a90d9", Sound: "chime"}
	case CategoryChallenge:
		return CategoryMeta{Icon: "target", Color: "#7ed321", Sound: "chime"}
	case CategoryStreak:
		return CategoryMeta{Icon: "flame", Color: "#ff6b35", Sound: "spark"}
	case CategoryCommunity:
		return CategoryMeta{Icon: "people", Color: "#9b59b6", Sound: "pop"}
	case CategoryReward:
		return CategoryMeta{Icon: "gift", Color: "#2ecc71", Sound: "coin"}
	case CategoryHealth:
		return CategoryMeta{Icon: "leaf-alert", Color: "#e74c3c", Sound: "alert"}
	}
	return CategoryMeta{}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	return c.Meta() != (CategoryMeta{})
}
