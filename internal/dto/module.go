package dto

import (
	"time"

	"finlearn/internal/domain"
)

// ModuleResponse represents a learning module in the API response.
// @Description Learning module with structured content
type ModuleResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Topic         string               `json:"topic"`
	Difficulty    string               `json:"difficulty"`
	Content       domain.ModuleContent `json:"content"`
	EstimatedTime string               `json:"estimatedTime"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ModuleStatusResponse reports whether the catalog has been populated.
// @Description Catalog population status
type ModuleStatusResponse struct {
	HasModules      bool `json:"hasModules"`
	Count           int  `json:"count"`
	NeedsGeneration bool `json:"needsGeneration"`
}

// GenerateModuleRequest represents the request body for AI module generation.
// @Description Request body for generating a learning module
type GenerateModuleRequest struct {
	Topic         string `json:"topic" validate:"required"`
	Difficulty    string `json:"difficulty"`
	EstimatedTime string `json:"estimatedTime"`
}

// SeedModulesResponse reports the outcome of seeding the premade catalog.
type SeedModulesResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// RecommendationsResponse is the response of the recommendation engine.
// @Description Recommended modules for the user's current skill level
type RecommendationsResponse struct {
	SkillLevel       string           `json:"skillLevel"`
	Recommendations  []ModuleResponse `json:"recommendations"`
	CompletedModules int              `json:"completedModules"`
	NextLevel        string           `json:"nextLevel"`
}

// NewModuleResponse converts a domain module into its API shape.
func NewModuleResponse(m *domain.LearningModule) ModuleResponse {
	return ModuleResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Topic:         m.Topic,
		Difficulty:    m.Difficulty,
		Content:       m.Content,
		EstimatedTime: m.EstimatedTime,
		CreatedAt:     m.CreatedAt,
	}
}

// NewModuleResponses converts a slice of domain modules. Always returns a
// non-nil slice so the JSON encodes as [] rather than null.
func NewModuleResponses(modules []*domain.LearningModule) []ModuleResponse {
	out := make([]ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, NewModuleResponse(m))
	}
	return out
}
