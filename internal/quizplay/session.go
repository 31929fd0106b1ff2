// Package quizplay drives a single play-through of a generated quiz: one
// question at a time, recorded answers, and a final score. A Session replaces
// the page-global playback state of the browser client; all operations are
// invoked serially in response to discrete user actions.
package quizplay

import (
	"strings"

	"studyforge/internal/domain"
)

// State is the playback state of a session.
type State string

const (
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// Answer is a recorded user answer: an option index for mcq questions, free
// text for oneword questions. Flashcards record nothing.
type Answer struct {
	OptionIndex *int   `json:"option_index,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Session holds the playback state for one quiz. It is created at quiz start,
// mutated by navigation and finish actions, and discarded when the quiz view
// closes or its store TTL lapses.
type Session struct {
	ID      string         `json:"id"`
	Quiz    domain.Quiz    `json:"quiz"`
	State   State          `json:"state"`
	Current int            `json:"current"`
	Answers map[int]Answer `json:"answers"`
	Score   int            `json:"score"`
}

// NewSession starts playback at the first question.
func NewSession(id string, quiz domain.Quiz) *Session {
	return &Session{
		ID:      id,
		Quiz:    quiz,
		State:   StateInProgress,
		Current: 0,
		Answers: make(map[int]Answer),
	}
}

// CurrentQuestion returns the question under the cursor, or nil once the
// session is finished or the quiz is empty.
func (s *Session) CurrentQuestion() domain.Question {
	if s.State != StateInProgress || s.Current >= len(s.Quiz.Questions) {
		return nil
	}
	return s.Quiz.Questions[s.Current]
}

// SubmitAnswer records value for the question at index. Invalid submissions
// are ignored rather than failed: an out-of-range mcq option, a blank oneword
// answer, any answer to a flashcard. Advance enforces the oneword gate.
func (s *Session) SubmitAnswer(index int, value Answer) {
	if s.State != StateInProgress || index < 0 || index >= len(s.Quiz.Questions) {
		return
	}
	switch q := s.Quiz.Questions[index].(type) {
	case domain.MCQQuestion:
		if value.OptionIndex == nil || *value.OptionIndex < 0 || *value.OptionIndex >= len(q.Options) {
			return
		}
		s.Answers[index] = Answer{OptionIndex: value.OptionIndex}
	case domain.OneWordQuestion:
		if strings.TrimSpace(value.Text) == "" {
			return
		}
		s.Answers[index] = Answer{Text: value.Text}
	case domain.FlashcardQuestion:
		// nothing to record
	}
}

// Advance moves to the next question, or finishes the quiz when the cursor
// leaves the last one. Advancing past an unanswered oneword question fails
// with a validation error and leaves the cursor unchanged.
func (s *Session) Advance() error {
	if s.State != StateInProgress {
		return domain.NewValidationError("quiz is already finished")
	}
	if err := s.checkAnswerGate(); err != nil {
		return err
	}
	s.Current++
	if s.Current >= len(s.Quiz.Questions) {
		s.finish()
	}
	return nil
}

// Retreat moves back one question. Recorded answers are kept, both for the
// question being left and the one being revisited.
func (s *Session) Retreat() error {
	if s.State != StateInProgress {
		return domain.NewValidationError("quiz is already finished")
	}
	if s.Current == 0 {
		return domain.NewValidationError("already at the first question")
	}
	s.Current--
	return nil
}

// Finish ends the quiz from the last question without a terminal advance.
// The same oneword gate applies.
func (s *Session) Finish() error {
	if s.State != StateInProgress {
		return domain.NewValidationError("quiz is already finished")
	}
	if err := s.checkAnswerGate(); err != nil {
		return err
	}
	s.finish()
	return nil
}

// Retake resets playback to the first question with no answers and no score,
// regardless of prior state.
func (s *Session) Retake() {
	s.State = StateInProgress
	s.Current = 0
	s.Answers = make(map[int]Answer)
	s.Score = 0
}

func (s *Session) checkAnswerGate() error {
	q := s.CurrentQuestion()
	if q == nil {
		return nil
	}
	if _, ok := q.(domain.OneWordQuestion); !ok {
		return nil
	}
	if answer, recorded := s.Answers[s.Current]; !recorded || strings.TrimSpace(answer.Text) == "" {
		return domain.NewValidationError("an answer is required before moving on")
	}
	return nil
}

func (s *Session) finish() {
	s.Score = scoreQuiz(s.Quiz, s.Answers)
	s.State = StateFinished
}
