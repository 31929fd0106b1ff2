package generation

import (
	"encoding/json"
	"strings"

	"studyforge/internal/domain"
)

// StripCodeFences removes ```json / ``` fence markers that models like to
// wrap structured output in.
func StripCodeFences(raw string) string {
	out := strings.ReplaceAll(raw, "```json", "")
	out = strings.ReplaceAll(out, "```", "")
	return strings.TrimSpace(out)
}

// ParseQuizResponse turns raw model output into a domain Quiz. It tolerates
// code fences and surrounding prose by extracting the outermost JSON object
// before unmarshalling.
func ParseQuizResponse(raw string) (*domain.Quiz, error) {
	cleaned := StripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, domain.NewParseError("no JSON object found in model response", nil)
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &quiz); err != nil {
		return nil, domain.NewParseError("model response is not valid quiz JSON", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, domain.NewParseError("model response contains no questions", nil)
	}
	return &quiz, nil
}
