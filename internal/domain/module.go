package domain

import (
	"context"
	"time"
)

// Difficulty levels for learning modules. Skill tiers reuse the same values.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// IsValidDifficulty reports whether s is one of the known difficulty levels.
func IsValidDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ContentSection is one ordered lesson section of a module.
type ContentSection struct {
	Section  string   `json:"section"`
	Text     string   `json:"text"`
	Examples []string `json:"examples,omitempty"`
}

// PracticeQuestion is a multiple-choice question embedded in module content.
// CorrectAnswer is the zero-based index into Options.
type PracticeQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// ModuleContent is the structured lesson body stored as JSON alongside the
// module row. It is deliberately typed rather than an open map so malformed
// LLM output is rejected at decode time.
type ModuleContent struct {
	Objectives        []string           `json:"objectives"`
	Sections          []ContentSection   `json:"content"`
	KeyTakeaways      []string           `json:"keyTakeaways"`
	PracticeQuestions []PracticeQuestion `json:"practiceQuestions"`
	Resources         []string           `json:"resources,omitempty"`
}

// LearningModule is a catalog entry. Read-mostly reference data.
type LearningModule struct {
	ID            string
	Title         string
	Description   string
	Topic         string
	Difficulty    string
	Content       ModuleContent
	EstimatedTime string
	CreatedAt     time.Time
}

// Validate checks the module before persistence.
func (m *LearningModule) Validate() error {
	if m.Title == "" {
		return NewInvalidInputError("module title is required")
	}
	if m.Description == "" {
		return NewInvalidInputError("module description is required")
	}
	if m.Topic == "" {
		return NewInvalidInputError("module topic is required")
	}
	if !IsValidDifficulty(m.Difficulty) {
		return NewInvalidInputError("module difficulty must be beginner, intermediate or advanced")
	}
	return nil
}

// ModuleRepository defines the interface for learning module persistence.
// GetAllModules returns the catalog in creation order; recommendation
// truncation depends on that ordering being stable.
type ModuleRepository interface {
	GetAllModules(ctx context.Context) ([]*LearningModule, error)
	GetModuleByID(ctx context.Context, id string) (*LearningModule, error)
	GetModuleByTitle(ctx context.Context, title string) (*LearningModule, error)
	CountModules(ctx context.Context) (int, error)
	SaveModule(ctx context.Context, module *LearningModule) error
	UpdateModule(ctx context.Context, module *LearningModule) error
}
