package validation

import (
	"strings"
	"testing"

	"finlearn/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validModuleID = "01HZXCVBNMASDFGHJKQWERTYT0"

func TestValidateUpdateProgressRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateUpdateProgressRequest(validModuleID))

	t.Run("missing module id", func(t *testing.T) {
		errs := v.ValidateUpdateProgressRequest("")
		require.Len(t, errs, 1)
		assert.Equal(t, "moduleId", errs[0].Field)
		assert.Equal(t, string(domain.CodeMissingField), errs[0].Code)
	})

	t.Run("malformed module id", func(t *testing.T) {
		errs := v.ValidateUpdateProgressRequest("not-a-ulid")
		require.Len(t, errs, 1)
		assert.Equal(t, string(domain.CodeInvalidFormat), errs[0].Code)
	})
}

func TestValidateTrackUsageRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateTrackUsageRequest(domain.ActionModuleStarted))
	assert.Empty(t, v.ValidateTrackUsageRequest(domain.ActionModuleCompleted))

	errs := v.ValidateTrackUsageRequest("module_paused")
	require.Len(t, errs, 1)
	assert.Equal(t, "action", errs[0].Field)

	errs = v.ValidateTrackUsageRequest("")
	require.Len(t, errs, 1)
	assert.Equal(t, string(domain.CodeMissingField), errs[0].Code)
}

func TestValidateChatRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateChatRequest("What is compound interest?"))

	t.Run("blank message", func(t *testing.T) {
		errs := v.ValidateChatRequest("   ")
		require.Len(t, errs, 1)
		assert.Equal(t, "message", errs[0].Field)
	})

	t.Run("message too long", func(t *testing.T) {
		errs := v.ValidateChatRequest(strings.Repeat("a", maxChatMessageLength+1))
		require.Len(t, errs, 1)
		assert.Equal(t, string(domain.CodeOutOfRange), errs[0].Code)
	})
}

func TestValidateGenerateRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateGenerateRequest("index funds", ""))
	assert.Empty(t, v.ValidateGenerateRequest("index funds", domain.DifficultyAdvanced))

	t.Run("missing topic", func(t *testing.T) {
		errs := v.ValidateGenerateRequest("", "")
		require.Len(t, errs, 1)
		assert.Equal(t, "topic", errs[0].Field)
	})

	t.Run("topic too long", func(t *testing.T) {
		errs := v.ValidateGenerateRequest(strings.Repeat("a", 201), "")
		require.Len(t, errs, 1)
		assert.Equal(t, string(domain.CodeOutOfRange), errs[0].Code)
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		errs := v.ValidateGenerateRequest("index funds", "expert")
		require.Len(t, errs, 1)
		assert.Equal(t, "difficulty", errs[0].Field)
	})
}

func TestValidateRecordQuizResultRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateRecordQuizResultRequest("", domain.QuizTypeAIGenerated))
	assert.Empty(t, v.ValidateRecordQuizResultRequest(validModuleID, domain.QuizTypeModule))

	t.Run("malformed module id", func(t *testing.T) {
		errs := v.ValidateRecordQuizResultRequest("nope", domain.QuizTypeModule)
		require.Len(t, errs, 1)
		assert.Equal(t, "moduleId", errs[0].Field)
	})

	t.Run("missing quiz type", func(t *testing.T) {
		errs := v.ValidateRecordQuizResultRequest("", "")
		require.Len(t, errs, 1)
		assert.Equal(t, "quizType", errs[0].Field)
	})

	t.Run("unknown quiz type", func(t *testing.T) {
		errs := v.ValidateRecordQuizResultRequest("", "oral-exam")
		require.Len(t, errs, 1)
		assert.Equal(t, string(domain.CodeInvalidFormat), errs[0].Code)
	})
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, isValidULID(validModuleID))
	assert.False(t, isValidULID("short"))
	assert.False(t, isValidULID(strings.ToLower(validModuleID)))
	assert.False(t, isValidULID("01HZXCVBNMASDFGHJKQWERTYIL")) // I and L are excluded
}
