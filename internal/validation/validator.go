package validation

import (
	"regexp"
	"strings"

	"finlearn/internal/domain"
)

const maxChatMessageLength = 2000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUpdateProgressRequest validates a progress report. Progress values
// outside [0,100] pass validation; the service clamps them.
func (v *Validator) ValidateUpdateProgressRequest(moduleID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(moduleID) == "" {
		errors = append(errors, domain.NewMissingFieldError("moduleId"))
	} else if !isValidULID(moduleID) {
		errors = append(errors, domain.NewInvalidFormatError("moduleId", moduleID))
	}

	return errors
}

// ValidateTrackUsageRequest validates the usage gate action.
func (v *Validator) ValidateTrackUsageRequest(action string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(action) == "" {
		errors = append(errors, domain.NewMissingFieldError("action"))
	} else if action != domain.ActionModuleStarted && action != domain.ActionModuleCompleted {
		errors = append(errors, domain.NewInvalidFormatError("action", action))
	}

	return errors
}

// ValidateChatRequest validates one chat turn.
func (v *Validator) ValidateChatRequest(message string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(message) == "" {
		errors = append(errors, domain.NewMissingFieldError("message"))
	} else if len(message) > maxChatMessageLength {
		errors = append(errors, domain.NewOutOfRangeError("message", len(message), 1, maxChatMessageLength))
	}

	return errors
}

// ValidateGenerateRequest validates topic and difficulty of LLM generation
// requests. An empty difficulty is allowed; the service applies a default.
func (v *Validator) ValidateGenerateRequest(topic, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if len(topic) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(topic), 1, 200))
	}

	if difficulty != "" && !domain.IsValidDifficulty(difficulty) {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	return errors
}

// ValidateRecordQuizResultRequest validates a submitted quiz attempt.
func (v *Validator) ValidateRecordQuizResultRequest(moduleID, quizType string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if moduleID != "" && !isValidULID(moduleID) {
		errors = append(errors, domain.NewInvalidFormatError("moduleId", moduleID))
	}

	if strings.TrimSpace(quizType) == "" {
		errors = append(errors, domain.NewMissingFieldError("quizType"))
	} else if quizType != domain.QuizTypeModule && quizType != domain.QuizTypeAIGenerated {
		errors = append(errors, domain.NewInvalidFormatError("quizType", quizType))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
