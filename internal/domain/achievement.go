package domain

// Achievement is a derived badge. There is no persisted ledger: the set is
// recomputed from aggregate counts on every call, so a user can never lose a
// badge their counts imply, but unlock history cannot be reconstructed.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

// EvaluateAchievements derives the badge set from the user's completed module
// count and best quiz score. Thresholds are cumulative: a user past all of
// them holds every qualifying badge at once.
func EvaluateAchievements(completedModules int, bestScore int) []Achievement {
	achievements := []Achievement{}

	if completedModules >= 1 {
		achievements = append(achievements, Achievement{
			ID:          "first-module",
			Title:       "Getting Started",
			Description: "Completed your first learning module!",
			Icon:        "🎯",
			Points:      10,
		})
	}
	if completedModules >= 5 {
		achievements = append(achievements, Achievement{
			ID:          "dedicated-learner",
			Title:       "Dedicated Learner",
			Description: "Completed 5 learning modules!",
			Icon:        "📚",
			Points:      50,
		})
	}
	if completedModules >= 10 {
		achievements = append(achievements, Achievement{
			ID:          "knowledge-master",
			Title:       "Knowledge Master",
			Description: "Completed 10 learning modules!",
			Icon:        "🏆",
			Points:      100,
		})
	}
	if bestScore >= 100 {
		achievements = append(achievements, Achievement{
			ID:          "perfectionist",
			Title:       "Perfectionist",
			Description: "Achieved a perfect quiz score!",
			Icon:        "⭐",
			Points:      25,
		})
	}

	return achievements
}

// TotalPoints sums the points of the held achievements.
func TotalPoints(achievements []Achievement) int {
	total := 0
	for _, a := range achievements {
		total += a.Points
	}
	return total
}

// LevelForPoints maps total points to a user level: every 100 points is one level.
func LevelForPoints(totalPoints int) int {
	return totalPoints/100 + 1
}

// LevelTitle maps a user level to its display title.
func LevelTitle(level int) string {
	switch {
	case level >= 10:
		return "Financial Master"
	case level >= 5:
		return "Investment Expert"
	case level >= 3:
		return "Learning Enthusiast"
	default:
		return "Getting Started"
	}
}

// SkillLevelForCompleted derives the recommendation tier from the completed
// module count. Access widens monotonically with the tier.
func SkillLevelForCompleted(completedCount int) string {
	switch {
	case completedCount >= 5:
		return DifficultyAdvanced
	case completedCount >= 2:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}

// NextSkillLevel returns the tier strictly above the given one. Advanced has
// no real next tier; "expert" is a terminal display label.
func NextSkillLevel(skillLevel string) string {
	switch skillLevel {
	case DifficultyBeginner:
		return DifficultyIntermediate
	case DifficultyIntermediate:
		return DifficultyAdvanced
	default:
		return "expert"
	}
}

// DifficultyVisible reports whether a module of the given difficulty is
// recommendable to a user at the given skill level.
func DifficultyVisible(skillLevel, difficulty string) bool {
	switch skillLevel {
	case DifficultyBeginner:
		return difficulty == DifficultyBeginner
	case DifficultyIntermediate:
		return difficulty == DifficultyBeginner || difficulty == DifficultyIntermediate
	default:
		return true
	}
}
