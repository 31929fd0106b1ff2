package export

import (
	"fmt"
	"html"
	"strings"

	"studyforge/internal/domain"
)

// BuildQuizHTML renders a quiz as a printable paper: numbered questions, then
// an answer key on its own page. Flashcards print as plain prompts and are
// left out of the key.
func BuildQuizHTML(quiz domain.Quiz) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<div class="quiz-header"><h1>%s</h1><p>Difficulty: %s | Questions: %d</p></div>`+"\n",
		html.EscapeString(quiz.Topic), html.EscapeString(quiz.Difficulty), len(quiz.Questions))

	for i, question := range quiz.Questions {
		b.WriteString(`<div class="question">` + "\n")
		fmt.Fprintf(&b, `<div class="question-title">%d. %s</div>`+"\n", i+1, html.EscapeString(question.Prompt()))
		switch q := question.(type) {
		case domain.MCQQuestion:
			b.WriteString(`<div class="options">` + "\n")
			for _, option := range q.Options {
				fmt.Fprintf(&b, `<div class="option">&#9675; %s</div>`+"\n", html.EscapeString(option))
			}
			b.WriteString("</div>\n")
		case domain.OneWordQuestion:
			b.WriteString(`<div class="answer-space">Answer: _________________</div>` + "\n")
		}
		b.WriteString("</div>\n")
	}

	b.WriteString(`<div class="answer-key">` + "\n<h2>Answer Key</h2>\n")
	for i, question := range quiz.Questions {
		switch q := question.(type) {
		case domain.MCQQuestion:
			fmt.Fprintf(&b, "<p>%d. %s</p>\n", i+1, html.EscapeString(q.Options[q.CorrectAnswer]))
		case domain.OneWordQuestion:
			fmt.Fprintf(&b, "<p>%d. %s</p>\n", i+1, html.EscapeString(q.Answer))
		}
	}
	b.WriteString("</div>\n")

	return b.String()
}
