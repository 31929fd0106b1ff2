package quizplay

import (
	"fmt"
	"math"

	"studyforge/internal/domain"
)

// Tier is the qualitative performance band for a finished quiz.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierNeedsWork Tier = "needs work"
)

// Result summarizes a finished session.
type Result struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Tier       Tier   `json:"tier"`
	Message    string `json:"message"`
}

// scoreQuiz walks every question once. MCQ scores on an exact option match,
// oneword on a trimmed case-insensitive match; flashcards always score since
// they measure engagement, not correctness.
func scoreQuiz(quiz domain.Quiz, answers map[int]Answer) int {
	score := 0
	for i, question := range quiz.Questions {
		switch q := question.(type) {
		case domain.MCQQuestion:
			if answer, ok := answers[i]; ok && answer.OptionIndex != nil && q.IsCorrect(*answer.OptionIndex) {
				score++
			}
		case domain.OneWordQuestion:
			if answer, ok := answers[i]; ok && q.Matches(answer.Text) {
				score++
			}
		case domain.FlashcardQuestion:
			score++
		}
	}
	return score
}

// Percentage returns round(100*score/total), guarding an empty quiz to 0.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// TierFor maps a percentage to its performance tier. Bounds are inclusive
// from below: 90, 70 and 50.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 90:
		return TierExcellent
	case percentage >= 70:
		return TierGood
	case percentage >= 50:
		return TierAverage
	default:
		return TierNeedsWork
	}
}

// MessageFor returns the user-facing performance message for a tier.
func MessageFor(tier Tier, topic string) string {
	switch tier {
	case TierExcellent:
		return fmt.Sprintf("Excellent work! You have a great understanding of %s!", topic)
	case TierGood:
		return fmt.Sprintf("Good job! You have a solid grasp of %s!", topic)
	case TierAverage:
		return fmt.Sprintf("Not bad! Consider reviewing %s to improve your understanding.", topic)
	default:
		return fmt.Sprintf("Keep studying! %s requires more practice.", topic)
	}
}

// Result builds the results summary. It is meaningful once the session is
// finished; before that the score is still zero.
func (s *Session) Result() Result {
	total := len(s.Quiz.Questions)
	percentage := Percentage(s.Score, total)
	tier := TierFor(percentage)
	return Result{
		Score:      s.Score,
		Total:      total,
		Percentage: percentage,
		Tier:       tier,
		Message:    MessageFor(tier, s.Quiz.Topic),
	}
}
