package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation, export and interactive sessions
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates a quiz about the given topic with the requested question mix
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz request"
// @Success 200 {object} domain.Quiz
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}

	quiz, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// DownloadQuiz godoc
// @Summary Download a quiz
// @Description Exports a quiz as a printable PDF with an answer key
// @Tags quizzes
// @Accept json
// @Produce application/pdf
// @Param request body domain.Quiz true "Quiz"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes/download [post]
func (h *QuizHandler) DownloadQuiz(c *fiber.Ctx) error {
	var quiz domain.Quiz
	if err := c.BodyParser(&quiz); err != nil {
		return domain.NewInvalidInputError("request body is not a valid quiz")
	}

	file, err := h.service.DownloadQuiz(c.Context(), quiz)
	if err != nil {
		return err
	}
	return sendFile(c, file)
}

// StartSession godoc
// @Summary Start an interactive quiz session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Quiz to play"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *QuizHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not a valid quiz")
	}

	resp, err := h.service.StartSession(c.Context(), req.Quiz)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSession godoc
// @Summary Get the current session state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Record an answer for a session question
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not a valid answer")
	}

	resp, err := h.service.SubmitAnswer(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance godoc
// @Summary Move to the next question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/advance [post]
func (h *QuizHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.service.Advance(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Retreat godoc
// @Summary Move back to the previous question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/retreat [post]
func (h *QuizHandler) Retreat(c *fiber.Ctx) error {
	resp, err := h.service.Retreat(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Finish godoc
// @Summary Finish the quiz and compute the score
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/finish [post]
func (h *QuizHandler) Finish(c *fiber.Ctx) error {
	resp, err := h.service.Finish(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Retake godoc
// @Summary Restart the quiz from the first question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/retake [post]
func (h *QuizHandler) Retake(c *fiber.Ctx) error {
	resp, err := h.service.Retake(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
