package generation

import (
	"fmt"
	"math"
	"strings"

	"studyforge/internal/domain"
)

var lengthGuide = map[domain.ReportLength]string{
	domain.LengthShort:  "500-800 words",
	domain.LengthMedium: "1000-1500 words",
	domain.LengthLong:   "2000+ words",
}

// ReportPromptData carries the user's report request into prompt construction.
type ReportPromptData struct {
	Topic      string
	Length     domain.ReportLength
	Formatting []string
}

// BuildReportPrompt renders the report generation prompt. Formatting options
// ("bullet", "numbered", "tables", "headings") toggle the matching
// instructions; the markdown dialect is fixed so the renderer understands the
// output.
func BuildReportPrompt(data ReportPromptData) string {
	guide, ok := lengthGuide[data.Length]
	if !ok {
		guide = lengthGuide[domain.LengthMedium]
	}

	var extra []string
	if contains(data.Formatting, "headings") {
		extra = append(extra, "Use clear section headings (## for main sections, ### for subsections).")
	}
	if contains(data.Formatting, "bullet") {
		extra = append(extra, "Include bullet points where appropriate.")
	}
	if contains(data.Formatting, "numbered") {
		extra = append(extra, "Use numbered lists for sequential information.")
	}
	if contains(data.Formatting, "tables") {
		extra = append(extra, "Include tables for data comparison where relevant.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive report about %q that is %s.\n\n", data.Topic, guide)
	b.WriteString("Format Requirements:\n")
	b.WriteString("- Use markdown formatting for structure\n")
	b.WriteString("- Use **bold** for important terms and concepts\n")
	b.WriteString("- Use *italics* for emphasis\n")
	b.WriteString("- Use __underline__ for key definitions\n")
	for _, line := range extra {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("- Include an introduction, main content sections, and conclusion\n")
	b.WriteString("- Make it informative, well-structured, and engaging\n")
	b.WriteString("- Ensure proper paragraph breaks for readability\n\n")
	b.WriteString("The report should be educational and factual, covering key aspects of the topic in depth.")
	return b.String()
}

// QuizPromptData carries the user's quiz request into prompt construction.
type QuizPromptData struct {
	Topic        string
	Types        []domain.QuestionType
	NumQuestions int
	Difficulty   string
}

// DistributeQuestions splits the requested total over the selected types in
// selection order: one type takes all; two types split ceil(60%) and the rest;
// three types split ceil(50%), ceil(30%) and the rest.
func DistributeQuestions(types []domain.QuestionType, total int) map[domain.QuestionType]int {
	counts := make(map[domain.QuestionType]int, len(types))
	switch len(types) {
	case 1:
		counts[types[0]] = total
	case 2:
		counts[types[0]] = ceilFrac(total, 0.6)
		counts[types[1]] = total - counts[types[0]]
	case 3:
		counts[types[0]] = ceilFrac(total, 0.5)
		counts[types[1]] = ceilFrac(total, 0.3)
		// the two ceils can overshoot a tiny total; the remainder is never
		// allowed below zero
		rest := total - counts[types[0]] - counts[types[1]]
		if rest < 0 {
			rest = 0
		}
		counts[types[2]] = rest
	}
	return counts
}

func ceilFrac(total int, frac float64) int {
	return int(math.Ceil(float64(total) * frac))
}

// BuildQuizPrompt renders the quiz generation prompt, pinning the JSON shape
// the parser expects.
func BuildQuizPrompt(data QuizPromptData) string {
	counts := DistributeQuestions(data.Types, data.NumQuestions)

	var typeInstructions []string
	for _, t := range data.Types {
		count := counts[t]
		switch t {
		case domain.QuestionMCQ:
			typeInstructions = append(typeInstructions, fmt.Sprintf("%d multiple choice questions with 4 options each", count))
		case domain.QuestionOneWord:
			typeInstructions = append(typeInstructions, fmt.Sprintf("%d one-word answer questions", count))
		case domain.QuestionFlashcard:
			typeInstructions = append(typeInstructions, fmt.Sprintf("%d flashcard-style Q&A pairs", count))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s difficulty quiz about %q with exactly %d questions total.\n\n",
		data.Difficulty, data.Topic, data.NumQuestions)
	fmt.Fprintf(&b, "Include exactly: %s\n\n", strings.Join(typeInstructions, ", "))
	fmt.Fprintf(&b, "IMPORTANT: Create questions in the exact order and quantities specified above. Do not exceed %d total questions.\n\n", data.NumQuestions)
	b.WriteString("Format the response as JSON with this structure:\n")
	fmt.Fprintf(&b, `{
    "topic": %q,
    "difficulty": %q,
    "questions": [
        {
            "type": "mcq",
            "question": "Question text",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correctAnswer": 0
        },
        {
            "type": "oneword",
            "question": "Question text",
            "answer": "correct answer"
        },
        {
            "type": "flashcard",
            "question": "Question text",
            "answer": "Answer text"
        }
    ]
}`, data.Topic, data.Difficulty)
	b.WriteString("\n\nMake questions engaging and educational, testing understanding rather than just memorization.")
	return b.String()
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
