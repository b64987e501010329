package service

import (
	"context"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/logger"
	"finlearn/internal/util"

	"go.uber.org/zap"
)

const (
	defaultQuizQuestions = 5
	maxQuizQuestions     = 10
)

// QuizService defines the interface for quiz generation and results.
type QuizService interface {
	GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) (*dto.GenerateQuizResponse, error)
	RecordResult(ctx context.Context, userID string, req *dto.RecordQuizResultRequest) (*dto.QuizResultResponse, error)
	GetResults(ctx context.Context, userID string) ([]dto.QuizResultResponse, error)
}

type quizServiceImpl struct {
	quizRepo   domain.QuizResultRepository
	moduleRepo domain.ModuleRepository
	generator  domain.QuizGenerationService
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(
	quizRepo domain.QuizResultRepository,
	moduleRepo domain.ModuleRepository,
	generator domain.QuizGenerationService,
) QuizService {
	return &quizServiceImpl{
		quizRepo:   quizRepo,
		moduleRepo: moduleRepo,
		generator:  generator,
	}
}

// GenerateQuiz asks the LLM for multiple-choice questions on the topic.
// Nothing is persisted until the attempt is submitted.
func (s *quizServiceImpl) GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) (*dto.GenerateQuizResponse, error) {
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}
	if !domain.IsValidDifficulty(difficulty) {
		return nil, domain.NewInvalidInputError("difficulty must be beginner, intermediate or advanced")
	}
	if numQuestions <= 0 {
		numQuestions = defaultQuizQuestions
	}
	if numQuestions > maxQuizQuestions {
		numQuestions = maxQuizQuestions
	}

	questions, err := s.generator.GenerateQuiz(ctx, topic, difficulty, numQuestions)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	return &dto.GenerateQuizResponse{Questions: questions}, nil
}

// RecordResult appends a quiz attempt. When the attempt targets a module, the
// module must exist.
func (s *quizServiceImpl) RecordResult(ctx context.Context, userID string, req *dto.RecordQuizResultRequest) (*dto.QuizResultResponse, error) {
	result := &domain.QuizResult{
		ID:             util.NewULID(),
		UserID:         userID,
		ModuleID:       req.ModuleID,
		QuizType:       req.QuizType,
		Questions:      req.Questions,
		Answers:        req.Answers,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	if result.ModuleID != "" {
		module, err := s.moduleRepo.GetModuleByID(ctx, result.ModuleID)
		if err != nil {
			return nil, domain.NewUpstreamError("failed to load module", err)
		}
		if module == nil {
			return nil, domain.NewModuleNotFoundError(result.ModuleID)
		}
	}

	if err := s.quizRepo.CreateResult(ctx, result); err != nil {
		return nil, domain.NewUpstreamError("failed to record quiz result", err)
	}

	logger.Get().Info("Quiz result recorded",
		zap.String("userID", userID),
		zap.String("quizType", result.QuizType),
		zap.Int("score", result.Score))

	resp := dto.NewQuizResultResponse(result)
	return &resp, nil
}

// GetResults lists the user's quiz attempts, newest first.
func (s *quizServiceImpl) GetResults(ctx context.Context, userID string) ([]dto.QuizResultResponse, error) {
	results, err := s.quizRepo.GetResultsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to list quiz results", err)
	}
	return dto.NewQuizResultResponses(results), nil
}
