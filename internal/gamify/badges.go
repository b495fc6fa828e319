package gamify

// UserStats is the snapshot badge predicates are evaluated against.
type UserStats struct {
	TreesPlanted        int64
	DayStreak           int
	MonthStreak         int
	ChallengesCompleted int64
	QuizzesCompleted    int64
	GamesPlayed         int64
	PostsShared         int64
	SeedsLifetime       int64
}

type BadgeDef struct {
	Name        string
	Description string
	SeedReward  int64
	Predicate   func(UserStats) bool
}

// TreeMilestones are the planted-tree counts that grant a badge and an
// achievement in the planting workflow.
var TreeMilestones = []int64{1, 10, 50, 100}

// TreeMilestoneBadge returns the badge granted at an exact milestone count.
func TreeMilestoneBadge(count int64) (BadgeDef, bool) {
	for _, def := range BadgeCatalog() {
		switch def.Name {
		case "First Sprout":
			if count == 1 {
				return def, true
			}
		case "Grove Keeper":
			if count == 10 {
				return def, true
			}
		case "Forest Guardian":
			if count == 50 {
				return def, true
			}
		case "Canopy Centurion":
			if count == 100 {
				return def, true
			}
		}
	}
	return BadgeDef{}, false
}

// BadgeCatalog is the fixed badge catalog. Unlocks are idempotent: the
// (uid, name) unique index absorbs re-evaluation.
func BadgeCatalog() []BadgeDef {
	return []BadgeDef{
		{
			Name: "First Sprout", Description: "Plant your first tree", SeedReward: 10,
			Predicate: func(s UserStats) bool { return s.TreesPlanted >= 1 },
		},
		{
			Name: "Grove Keeper", Description: "Plant 10 trees", SeedReward: 50,
			Predicate: func(s UserStats) bool { return s.TreesPlanted >= 10 },
		},
		{
			Name: "Forest Guardian", Description: "Plant 50 trees", SeedReward: 200,
			Predicate: func(s UserStats) bool { return s.TreesPlanted >= 50 },
		},
		{
			Name: "Canopy Centurion", Description: "Plant 100 trees", SeedReward: 500,
			Predicate: func(s UserStats) bool { return s.TreesPlanted >= 100 },
		},
		{
			Name: "Week of Green", Description: "Stay active 7 days in a row", SeedReward: 70,
			Predicate: func(s UserStats) bool { return s.DayStreak >= 7 },
		},
		{
			Name: "Evergreen", Description: "Stay active 30 days in a row", SeedReward: 300,
			Predicate: func(s UserStats) bool { return s.DayStreak >= 30 },
		},
		{
			Name: "Season Veteran", Description: "Active 3 months in a row", SeedReward: 150,
			Predicate: func(s UserStats) bool { return s.MonthStreak >= 3 },
		},
		{
			Name: "Challenger", Description: "Complete your first challenge", SeedReward: 20,
			Predicate: func(s UserStats) bool { return s.ChallengesCompleted >= 1 },
		},
		{
			Name: "Goal Getter", Description: "Complete 10 challenges", SeedReward: 100,
			Predicate: func(s UserStats) bool { return s.ChallengesCompleted >= 10 },
		},
		{
			Name: "Quiz Whiz", Description: "Finish 5 quizzes", SeedReward: 40,
			Predicate: func(s UserStats) bool { return s.QuizzesCompleted >= 5 },
		},
		{
			Name: "Arcade Gardener", Description: "Play 10 minigames", SeedReward: 40,
			Predicate: func(s UserStats) bool { return s.GamesPlayed >= 10 },
		},
		{
			Name: "Community Voice", Description: "Share 5 posts", SeedReward: 30,
			Predicate: func(s UserStats) bool { return s.PostsShared >= 5 },
		},
		{
			Name: "Seed Magnate", Description: "Earn 1000 seeds lifetime", SeedReward: 0,
			Predicate: func(s UserStats) bool { return s.SeedsLifetime >= 1000 },
		},
	}
}

// NewlyEarned returns catalog badges whose predicate holds for stats and
// whose name is not in owned.
func NewlyEarned(stats UserStats, owned map[string]bool) []BadgeDef {
	var out []BadgeDef
	for _, def := range BadgeCatalog() {
		if owned[def.Name] {
			continue
		}
		if def.Predicate != nil && def.Predicate(stats) {
			out = append(out, def)
		}
	}
	return out
}
