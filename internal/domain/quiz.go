package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionType discriminates the question variants on the wire.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionOneWord   QuestionType = "oneword"
	QuestionFlashcard QuestionType = "flashcard"
)

// Question is the closed set of question variants. A question's type never
// changes after creation; behavior that depends on it (rendering, scoring,
// navigation gating) type-switches over the three concrete types.
type Question interface {
	Type() QuestionType
	Prompt() string
}

// MCQQuestion is a multiple-choice question with four options.
type MCQQuestion struct {
	Question      string
	Options       []string
	CorrectAnswer int
}

func (q MCQQuestion) Type() QuestionType { return QuestionMCQ }
func (q MCQQuestion) Prompt() string     { return q.Question }

// IsCorrect reports whether the given option index is the correct answer.
func (q MCQQuestion) IsCorrect(optionIndex int) bool {
	return optionIndex == q.CorrectAnswer
}

// OneWordQuestion expects a short free-text answer.
type OneWordQuestion struct {
	Question string
	Answer   string
}

func (q OneWordQuestion) Type() QuestionType { return QuestionOneWord }
func (q OneWordQuestion) Prompt() string     { return q.Question }

// Matches compares a user answer against the expected answer,
// case-insensitively and ignoring surrounding whitespace.
func (q OneWordQuestion) Matches(userAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(q.Answer))
}

// FlashcardQuestion is a front/back study card. It records no answer and
// always counts as correct when scored.
type FlashcardQuestion struct {
	Question string
	Answer   string
}

func (q FlashcardQuestion) Type() QuestionType { return QuestionFlashcard }
func (q FlashcardQuestion) Prompt() string     { return q.Question }

// Quiz is a generated set of questions. Immutable after creation; playback
// state lives in quizplay, not here.
type Quiz struct {
	ID         string
	Topic      string
	Difficulty string
	Questions  []Question
}

// questionJSON is the flat wire shape shared by all variants.
type questionJSON struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer *int         `json:"correctAnswer,omitempty"`
	Answer        string       `json:"answer,omitempty"`
}

type quizJSON struct {
	ID         string         `json:"id,omitempty"`
	Topic      string         `json:"topic"`
	Difficulty string         `json:"difficulty"`
	Questions  []questionJSON `json:"questions"`
}

// MarshalJSON implements the json.Marshaler interface
func (q Quiz) MarshalJSON() ([]byte, error) {
	out := quizJSON{
		ID:         q.ID,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Questions:  make([]questionJSON, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		switch v := question.(type) {
		case MCQQuestion:
			idx := v.CorrectAnswer
			out.Questions = append(out.Questions, questionJSON{
				Type:          QuestionMCQ,
				Question:      v.Question,
				Options:       v.Options,
				CorrectAnswer: &idx,
			})
		case OneWordQuestion:
			out.Questions = append(out.Questions, questionJSON{
				Type:     QuestionOneWord,
				Question: v.Question,
				Answer:   v.Answer,
			})
		case FlashcardQuestion:
			out.Questions = append(out.Questions, questionJSON{
				Type:     QuestionFlashcard,
				Question: v.Question,
				Answer:   v.Answer,
			})
		default:
			return nil, fmt.Errorf("unknown question type %T", question)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (q *Quiz) UnmarshalJSON(data []byte) error {
	var raw quizJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	questions := make([]Question, 0, len(raw.Questions))
	for i, rq := range raw.Questions {
		question, err := rq.toDomain()
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, question)
	}
	q.ID = raw.ID
	q.Topic = raw.Topic
	q.Difficulty = raw.Difficulty
	q.Questions = questions
	return nil
}

func (rq questionJSON) toDomain() (Question, error) {
	switch rq.Type {
	case QuestionMCQ:
		if len(rq.Options) == 0 {
			return nil, fmt.Errorf("mcq question has no options")
		}
		if rq.CorrectAnswer == nil {
			return nil, fmt.Errorf("mcq question has no correctAnswer")
		}
		if *rq.CorrectAnswer < 0 || *rq.CorrectAnswer >= len(rq.Options) {
			return nil, fmt.Errorf("correctAnswer %d out of range for %d options", *rq.CorrectAnswer, len(rq.Options))
		}
		return MCQQuestion{Question: rq.Question, Options: rq.Options, CorrectAnswer: *rq.CorrectAnswer}, nil
	case QuestionOneWord:
		return OneWordQuestion{Question: rq.Question, Answer: rq.Answer}, nil
	case QuestionFlashcard:
		return FlashcardQuestion{Question: rq.Question, Answer: rq.Answer}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", rq.Type)
	}
}
