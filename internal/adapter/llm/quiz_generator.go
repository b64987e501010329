package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const quizGenPromptTemplate = `You are an expert quiz generator for an investment education platform. Create %d unique multiple-choice questions about "%s" for %s level learners.

Ensure your entire response is a single JSON array containing %d objects with this structure:
{
  "question": "Question text",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correctAnswer": 0,
  "explanation": "Why this answer is correct"
}

Rules:
1. "correctAnswer" is the zero-based index of the correct option
2. Every question has exactly 4 options
3. Explanations must be under 50 words
4. Questions must be practical and appropriate for %s level learners

Respond with ONLY the JSON array.`

// quizGenerator implements domain.QuizGenerationService using a langchaingo model.
type quizGenerator struct {
	model   llms.Model
	timeout time.Duration
}

// NewQuizGenerator creates a new instance of quizGenerator.
func NewQuizGenerator(model llms.Model, timeout time.Duration) domain.QuizGenerationService {
	return &quizGenerator{model: model, timeout: timeout}
}

// GenerateQuiz asks the LLM for numQuestions multiple-choice questions.
// Incomplete questions are dropped rather than failing the whole batch.
func (g *quizGenerator) GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) ([]domain.QuizQuestion, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(quizGenPromptTemplate, numQuestions, topic, difficulty, numQuestions, difficulty)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(callCtx, g.model, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(2000),
	)
	if err != nil {
		l.Error("LLM quiz generation failed", zap.String("topic", topic), zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("quiz generation failed: %w", err))
	}

	payload, err := extractJSON(raw)
	if err != nil {
		l.Error("Failed to locate JSON in quiz generation response", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	var questions []domain.QuizQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		l.Error("Failed to unmarshal generated quiz", zap.Error(err), zap.String("payload", truncate(payload, 300)))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to parse generated quiz: %w", err))
	}

	valid := make([]domain.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			l.Warn("Dropping incomplete generated question", zap.String("question", truncate(q.Question, 80)))
			continue
		}
		valid = append(valid, q)
	}

	if len(valid) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM returned no usable questions"))
	}

	l.Info("Generated quiz questions",
		zap.String("topic", topic),
		zap.Int("requested", numQuestions),
		zap.Int("usable", len(valid)))

	return valid, nil
}
