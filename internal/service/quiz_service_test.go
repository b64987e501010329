package service

import (
	"context"
	"errors"
	"testing"

	"finlearn/internal/domain"
	"finlearn/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuizServiceForTest() (QuizService, *MockQuizResultRepository, *MockModuleRepository, *MockQuizGenerator) {
	quizRepo := new(MockQuizResultRepository)
	moduleRepo := new(MockModuleRepository)
	generator := new(MockQuizGenerator)
	svc := NewQuizService(quizRepo, moduleRepo, generator)
	return svc, quizRepo, moduleRepo, generator
}

func TestGenerateQuiz(t *testing.T) {
	ctx := context.Background()
	questions := []domain.QuizQuestion{{Question: "What is a stock?", Options: []string{"a", "b", "c", "d"}}}

	t.Run("defaults question count and difficulty", func(t *testing.T) {
		svc, _, _, generator := newQuizServiceForTest()
		generator.On("GenerateQuiz", ctx, "stocks", domain.DifficultyBeginner, defaultQuizQuestions).Return(questions, nil)

		resp, err := svc.GenerateQuiz(ctx, "stocks", "", 0)

		require.NoError(t, err)
		assert.Len(t, resp.Questions, 1)
		generator.AssertExpectations(t)
	})

	t.Run("caps the question count", func(t *testing.T) {
		svc, _, _, generator := newQuizServiceForTest()
		generator.On("GenerateQuiz", ctx, "stocks", domain.DifficultyAdvanced, maxQuizQuestions).Return(questions, nil)

		_, err := svc.GenerateQuiz(ctx, "stocks", domain.DifficultyAdvanced, 50)

		require.NoError(t, err)
		generator.AssertExpectations(t)
	})

	t.Run("provider failure maps to the LLM error", func(t *testing.T) {
		svc, _, _, generator := newQuizServiceForTest()
		generator.On("GenerateQuiz", ctx, "stocks", domain.DifficultyBeginner, defaultQuizQuestions).Return(nil, errors.New("timeout"))

		_, err := svc.GenerateQuiz(ctx, "stocks", "", 0)

		assertDomainCode(t, err, domain.CodeLLMServiceError)
	})
}

func TestRecordResult(t *testing.T) {
	ctx := context.Background()

	validRequest := func() *dto.RecordQuizResultRequest {
		return &dto.RecordQuizResultRequest{
			QuizType:       domain.QuizTypeAIGenerated,
			Score:          80,
			TotalQuestions: 5,
			CorrectAnswers: 4,
		}
	}

	t.Run("records an ai-generated attempt", func(t *testing.T) {
		svc, quizRepo, moduleRepo, _ := newQuizServiceForTest()
		quizRepo.On("CreateResult", ctx, mock.MatchedBy(func(r *domain.QuizResult) bool {
			return r.UserID == "user-1" && r.Score == 80 && r.ID != ""
		})).Return(nil)

		resp, err := svc.RecordResult(ctx, "user-1", validRequest())

		require.NoError(t, err)
		assert.Equal(t, 80, resp.Score)
		moduleRepo.AssertNotCalled(t, "GetModuleByID", mock.Anything, mock.Anything)
	})

	t.Run("module attempts need an existing module", func(t *testing.T) {
		svc, quizRepo, moduleRepo, _ := newQuizServiceForTest()
		req := validRequest()
		req.QuizType = domain.QuizTypeModule
		req.ModuleID = "missing"
		moduleRepo.On("GetModuleByID", ctx, "missing").Return(nil, nil)

		_, err := svc.RecordResult(ctx, "user-1", req)

		assertDomainCode(t, err, domain.CodeModuleNotFound)
		quizRepo.AssertNotCalled(t, "CreateResult", mock.Anything, mock.Anything)
	})

	t.Run("invalid attempts never reach the store", func(t *testing.T) {
		svc, quizRepo, _, _ := newQuizServiceForTest()
		req := validRequest()
		req.Score = 150

		_, err := svc.RecordResult(ctx, "user-1", req)

		assert.Error(t, err)
		quizRepo.AssertNotCalled(t, "CreateResult", mock.Anything, mock.Anything)
	})
}

func TestGetResults(t *testing.T) {
	svc, quizRepo, _, _ := newQuizServiceForTest()
	ctx := context.Background()

	quizRepo.On("GetResultsByUser", ctx, "user-1").Return([]*domain.QuizResult{
		{ID: "q1", UserID: "user-1", Score: 100},
		{ID: "q2", UserID: "user-1", Score: 60},
	}, nil)

	resp, err := svc.GetResults(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, 100, resp[0].Score)
}
