package domain

import "context"

// ChatMessage is one turn of a tutor conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatCompleter is the port for conversational LLM calls. The provider is an
// opaque prompt-to-text function.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt string, history []ChatMessage, userMessage string) (string, error)
}

// GeneratedModule is the LLM's response to a module generation request before
// it is persisted as a LearningModule.
type GeneratedModule struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Objectives    []string           `json:"objectives"`
	Sections      []ContentSection   `json:"content"`
	KeyTakeaways  []string           `json:"keyTakeaways"`
	PracticeQs    []PracticeQuestion `json:"practiceQuestions"`
	Resources     []string           `json:"resources"`
	EstimatedTime string             `json:"estimatedTime"`
	Difficulty    string             `json:"difficulty"`
}

// ModuleGenerationService is the port for LLM-backed module generation.
type ModuleGenerationService interface {
	GenerateModule(ctx context.Context, topic, difficulty, estimatedTime string) (*GeneratedModule, error)
}

// QuizGenerationService is the port for LLM-backed quiz generation.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) ([]QuizQuestion, error)
}

// TransactionManager runs a function inside a storage transaction. Repository
// calls made with the inner context join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
