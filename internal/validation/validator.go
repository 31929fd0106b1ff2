package validation

import (
	"fmt"
	"strings"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
)

const (
	MinQuestions = 1
	MaxQuestions = 50
)

var validLengths = map[string]bool{
	string(domain.LengthShort):  true,
	string(domain.LengthMedium): true,
	string(domain.LengthLong):   true,
}

var validTypes = map[string]bool{
	string(domain.QuestionMCQ):       true,
	string(domain.QuestionOneWord):   true,
	string(domain.QuestionFlashcard): true,
}

// Validator checks generation requests before any external call is made.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateReportRequest rejects blank topics and unknown length bands.
// An empty length defaults to medium and is normalized in place.
func (v *Validator) ValidateReportRequest(req *dto.GenerateReportRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return domain.NewInvalidInputError("topic is required")
	}
	if req.Length == "" {
		req.Length = string(domain.LengthMedium)
	}
	if !validLengths[req.Length] {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid length: %s", req.Length))
	}
	return nil
}

// ValidateQuizRequest rejects blank topics, empty or unknown question type
// selections and out-of-range question counts. Difficulty is free-form; an
// empty one defaults to medium.
func (v *Validator) ValidateQuizRequest(req *dto.GenerateQuizRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return domain.NewInvalidInputError("topic is required")
	}
	if len(req.Types) == 0 {
		return domain.NewInvalidInputError("at least one quiz type is required")
	}
	seen := make(map[string]bool, len(req.Types))
	for _, t := range req.Types {
		if !validTypes[t] {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid quiz type: %s", t))
		}
		if seen[t] {
			return domain.NewInvalidInputError(fmt.Sprintf("duplicate quiz type: %s", t))
		}
		seen[t] = true
	}
	if req.NumQuestions < MinQuestions || req.NumQuestions > MaxQuestions {
		return domain.NewInvalidInputError(fmt.Sprintf("number of questions must be between %d and %d", MinQuestions, MaxQuestions))
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	return nil
}
