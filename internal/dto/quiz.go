package dto

import (
	"studyforge/internal/domain"
	"studyforge/internal/quizplay"
)

// GenerateQuizRequest is the body of POST /api/quizzes
type GenerateQuizRequest struct {
	Topic        string   `json:"topic"`
	Types        []string `json:"types"`
	NumQuestions int      `json:"num_questions"`
	Difficulty   string   `json:"difficulty"`
}

// StartSessionRequest is the body of POST /api/sessions. The client hands the
// generated quiz back; nothing is persisted between generation and play.
type StartSessionRequest struct {
	Quiz domain.Quiz `json:"quiz"`
}

// SubmitAnswerRequest records an answer for one question of a session.
// OptionIndex applies to mcq questions, Text to oneword questions.
type SubmitAnswerRequest struct {
	QuestionIndex int    `json:"question_index"`
	OptionIndex   *int   `json:"option_index,omitempty"`
	Text          string `json:"text,omitempty"`
}

// QuestionView is the client-facing projection of the current question.
// Correct answers of mcq and oneword questions are withheld; a flashcard's
// back is included so the client can flip it.
type QuestionView struct {
	Index    int      `json:"index"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Back     string   `json:"back,omitempty"`
}

// SessionResponse is the playback state returned by every session operation.
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Topic     string           `json:"topic"`
	State     string           `json:"state"`
	Current   int              `json:"current"`
	Total     int              `json:"total"`
	Question  *QuestionView    `json:"question,omitempty"`
	Answered  bool             `json:"answered"`
	Result    *quizplay.Result `json:"result,omitempty"`
}
