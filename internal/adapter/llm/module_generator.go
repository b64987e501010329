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

const moduleGenPromptTemplate = `You are an expert financial educator creating comprehensive learning modules. Create a detailed, interactive learning module about "%s" for %s level students.

The module should include:
1. A clear title and engaging description
2. Learning objectives (3-5 key points)
3. Main content broken into digestible sections
4. Real-world examples and case studies
5. Key takeaways
6. Practice questions (3-5 questions with answers)
7. Additional resources for further learning

Format the response as JSON with this structure:
{
  "title": "Module Title",
  "description": "Brief description of what students will learn",
  "objectives": ["Objective 1", "Objective 2", "Objective 3"],
  "content": [
    {
      "section": "Section Title",
      "text": "Detailed content here with examples",
      "examples": ["Example 1", "Example 2"]
    }
  ],
  "keyTakeaways": ["Takeaway 1", "Takeaway 2", "Takeaway 3"],
  "practiceQuestions": [
    {
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Why this answer is correct"
    }
  ],
  "resources": ["Resource 1", "Resource 2"],
  "estimatedTime": "%s",
  "difficulty": "%s"
}

Make the content engaging, practical, and appropriate for %s level learners. Respond with ONLY the JSON object.`

// moduleGenerator implements domain.ModuleGenerationService using a
// langchaingo model.
type moduleGenerator struct {
	model   llms.Model
	timeout time.Duration
}

// NewModuleGenerator creates a new instance of moduleGenerator.
func NewModuleGenerator(model llms.Model, timeout time.Duration) domain.ModuleGenerationService {
	return &moduleGenerator{model: model, timeout: timeout}
}

// GenerateModule asks the LLM for a complete lesson and decodes it into the
// typed module structure. Structurally incomplete output is rejected.
func (g *moduleGenerator) GenerateModule(ctx context.Context, topic, difficulty, estimatedTime string) (*domain.GeneratedModule, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(moduleGenPromptTemplate, topic, difficulty, estimatedTime, difficulty, difficulty)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(callCtx, g.model, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(2000),
	)
	if err != nil {
		l.Error("LLM module generation failed", zap.String("topic", topic), zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("module generation failed: %w", err))
	}

	payload, err := extractJSON(raw)
	if err != nil {
		l.Error("Failed to locate JSON in module generation response", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	var generated domain.GeneratedModule
	if err := json.Unmarshal([]byte(payload), &generated); err != nil {
		l.Error("Failed to unmarshal generated module", zap.Error(err), zap.String("payload", truncate(payload, 300)))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to parse generated module: %w", err))
	}

	if generated.Title == "" || len(generated.Sections) == 0 {
		l.Warn("LLM generated incomplete module", zap.String("topic", topic))
		return nil, domain.NewLLMServiceError(fmt.Errorf("generated module is incomplete"))
	}

	l.Info("Generated learning module",
		zap.String("topic", topic),
		zap.String("difficulty", difficulty),
		zap.Int("sections", len(generated.Sections)),
		zap.Int("practice_questions", len(generated.PracticeQs)))

	return &generated, nil
}
