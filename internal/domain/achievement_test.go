package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func achievementIDs(achievements []Achievement) []string {
	ids := make([]string, 0, len(achievements))
	for _, a := range achievements {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestEvaluateAchievements(t *testing.T) {
	t.Run("no completions and no quizzes yields nothing", func(t *testing.T) {
		achievements := EvaluateAchievements(0, 0)
		assert.Empty(t, achievements)
	})

	t.Run("first completion unlocks first-module", func(t *testing.T) {
		achievements := EvaluateAchievements(1, 0)
		assert.Equal(t, []string{"first-module"}, achievementIDs(achievements))
		assert.Equal(t, 10, achievements[0].Points)
		assert.Equal(t, "Getting Started", achievements[0].Title)
	})

	t.Run("five completions are cumulative", func(t *testing.T) {
		achievements := EvaluateAchievements(5, 0)
		assert.Equal(t, []string{"first-module", "dedicated-learner"}, achievementIDs(achievements))
	})

	t.Run("ten completions unlock all module badges", func(t *testing.T) {
		achievements := EvaluateAchievements(10, 0)
		assert.Equal(t, []string{"first-module", "dedicated-learner", "knowledge-master"}, achievementIDs(achievements))
	})

	t.Run("perfect quiz score unlocks perfectionist", func(t *testing.T) {
		achievements := EvaluateAchievements(0, 100)
		assert.Equal(t, []string{"perfectionist"}, achievementIDs(achievements))
		assert.Equal(t, 25, achievements[0].Points)
	})

	t.Run("99 is not perfect", func(t *testing.T) {
		achievements := EvaluateAchievements(0, 99)
		assert.Empty(t, achievements)
	})

	t.Run("badge set grows monotonically with completions", func(t *testing.T) {
		prev := 0
		for completed := 0; completed <= 12; completed++ {
			achievements := EvaluateAchievements(completed, 0)
			assert.GreaterOrEqual(t, len(achievements), prev, "completed=%d", completed)
			prev = len(achievements)
		}
	})
}

func TestTotalPointsAndLevel(t *testing.T) {
	all := EvaluateAchievements(10, 100)
	assert.Equal(t, 185, TotalPoints(all))

	assert.Equal(t, 1, LevelForPoints(0))
	assert.Equal(t, 1, LevelForPoints(99))
	assert.Equal(t, 2, LevelForPoints(100))
	assert.Equal(t, 2, LevelForPoints(185))
}

func TestLevelTitle(t *testing.T) {
	assert.Equal(t, "Getting Started", LevelTitle(1))
	assert.Equal(t, "Getting Started", LevelTitle(2))
	assert.Equal(t, "Learning Enthusiast", LevelTitle(3))
	assert.Equal(t, "Investment Expert", LevelTitle(5))
	assert.Equal(t, "Financial Master", LevelTitle(10))
}

func TestSkillLevelForCompleted(t *testing.T) {
	assert.Equal(t, DifficultyBeginner, SkillLevelForCompleted(0))
	assert.Equal(t, DifficultyBeginner, SkillLevelForCompleted(1))
	assert.Equal(t, DifficultyIntermediate, SkillLevelForCompleted(2))
	assert.Equal(t, DifficultyIntermediate, SkillLevelForCompleted(4))
	assert.Equal(t, DifficultyAdvanced, SkillLevelForCompleted(5))
}

func TestNextSkillLevel(t *testing.T) {
	assert.Equal(t, DifficultyIntermediate, NextSkillLevel(DifficultyBeginner))
	assert.Equal(t, DifficultyAdvanced, NextSkillLevel(DifficultyIntermediate))
	assert.Equal(t, "expert", NextSkillLevel(DifficultyAdvanced))
}

func TestDifficultyVisible(t *testing.T) {
	assert.True(t, DifficultyVisible(DifficultyBeginner, DifficultyBeginner))
	assert.False(t, DifficultyVisible(DifficultyBeginner, DifficultyIntermediate))
	assert.False(t, DifficultyVisible(DifficultyBeginner, DifficultyAdvanced))

	assert.True(t, DifficultyVisible(DifficultyIntermediate, DifficultyBeginner))
	assert.True(t, DifficultyVisible(DifficultyIntermediate, DifficultyIntermediate))
	assert.False(t, DifficultyVisible(DifficultyIntermediate, DifficultyAdvanced))

	assert.True(t, DifficultyVisible(DifficultyAdvanced, DifficultyBeginner))
	assert.True(t, DifficultyVisible(DifficultyAdvanced, DifficultyAdvanced))
}
