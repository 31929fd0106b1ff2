package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/handler"
	"studyforge/internal/middleware"
	"studyforge/internal/quizplay"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockQuizService
type MockQuizService struct {
	GenerateQuizFunc func(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error)
	DownloadQuizFunc func(ctx context.Context, quiz domain.Quiz) (*dto.FileDownload, error)
	StartSessionFunc func(ctx context.Context, quiz domain.Quiz) (*dto.SessionResponse, error)
	GetSessionFunc   func(ctx context.Context, id string) (*dto.SessionResponse, error)
	SubmitAnswerFunc func(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SessionResponse, error)
	AdvanceFunc      func(ctx context.Context, id string) (*dto.SessionResponse, error)
	RetreatFunc      func(ctx context.Context, id string) (*dto.SessionResponse, error)
	FinishFunc       func(ctx context.Context, id string) (*dto.SessionResponse, error)
	RetakeFunc       func(ctx context.Context, id string) (*dto.SessionResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}
func (m *MockQuizService) DownloadQuiz(ctx context.Context, quiz domain.Quiz) (*dto.FileDownload, error) {
	if m.DownloadQuizFunc != nil {
		return m.DownloadQuizFunc(ctx, quiz)
	}
	panic("MockQuizService.DownloadQuizFunc not implemented")
}
func (m *MockQuizService) StartSession(ctx context.Context, quiz domain.Quiz) (*dto.SessionResponse, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, quiz)
	}
	panic("MockQuizService.StartSessionFunc not implemented")
}
func (m *MockQuizService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	panic("MockQuizService.GetSessionFunc not implemented")
}
func (m *MockQuizService) SubmitAnswer(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SessionResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, id, req)
	}
	panic("MockQuizService.SubmitAnswerFunc not implemented")
}
func (m *MockQuizService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, id)
	}
	panic("MockQuizService.AdvanceFunc not implemented")
}
func (m *MockQuizService) Retreat(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.RetreatFunc != nil {
		return m.RetreatFunc(ctx, id)
	}
	panic("MockQuizService.RetreatFunc not implemented")
}
func (m *MockQuizService) Finish(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.FinishFunc != nil {
		return m.FinishFunc(ctx, id)
	}
	panic("MockQuizService.FinishFunc not implemented")
}
func (m *MockQuizService) Retake(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.RetakeFunc != nil {
		return m.RetakeFunc(ctx, id)
	}
	panic("MockQuizService.RetakeFunc not implemented")
}

func newQuizApp(svc *MockQuizService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewQuizHandler(svc)
	app.Post("/api/quizzes", h.GenerateQuiz)
	app.Post("/api/quizzes/download", h.DownloadQuiz)

	sessions := app.Group("/api/sessions")
	sessions.Post("/", h.StartSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Post("/:id/answers", h.SubmitAnswer)
	sessions.Post("/:id/advance", h.Advance)
	sessions.Post("/:id/retreat", h.Retreat)
	sessions.Post("/:id/finish", h.Finish)
	sessions.Post("/:id/retake", h.Retake)
	return app
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	mockSvc := &MockQuizService{
		GenerateQuizFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error) {
			assert.Equal(t, []string{"mcq"}, req.Types)
			assert.Equal(t, 5, req.NumQuestions)
			return &domain.Quiz{
				ID:         "q1",
				Topic:      req.Topic,
				Difficulty: "medium",
				Questions: []domain.Question{
					domain.MCQQuestion{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0},
				},
			}, nil
		},
	}
	app := newQuizApp(mockSvc)

	body, _ := json.Marshal(dto.GenerateQuizRequest{Topic: "Go", Types: []string{"mcq"}, NumQuestions: 5})
	req := httptest.NewRequest("POST", "/api/quizzes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var quiz domain.Quiz
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	assert.Equal(t, "q1", quiz.ID)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, domain.QuestionMCQ, quiz.Questions[0].Type())
}

func TestQuizHandler_GenerateQuiz_ParseErrorMapsToBadGateway(t *testing.T) {
	mockSvc := &MockQuizService{
		GenerateQuizFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error) {
			return nil, domain.NewParseError("model response is not valid quiz JSON", nil)
		},
	}
	app := newQuizApp(mockSvc)

	body, _ := json.Marshal(dto.GenerateQuizRequest{Topic: "Go", Types: []string{"mcq"}, NumQuestions: 5})
	req := httptest.NewRequest("POST", "/api/quizzes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestQuizHandler_StartSession(t *testing.T) {
	mockSvc := &MockQuizService{
		StartSessionFunc: func(ctx context.Context, quiz domain.Quiz) (*dto.SessionResponse, error) {
			assert.Equal(t, "Go", quiz.Topic)
			return &dto.SessionResponse{
				SessionID: "s1",
				Topic:     quiz.Topic,
				State:     string(quizplay.StateInProgress),
				Total:     len(quiz.Questions),
				Question: &dto.QuestionView{
					Index:    0,
					Type:     "mcq",
					Question: "q",
					Options:  []string{"a", "b"},
				},
			}, nil
		},
	}
	app := newQuizApp(mockSvc)

	body, _ := json.Marshal(dto.StartSessionRequest{Quiz: domain.Quiz{
		Topic:      "Go",
		Difficulty: "medium",
		Questions: []domain.Question{
			domain.MCQQuestion{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
	}})
	req := httptest.NewRequest("POST", "/api/sessions/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "s1", got.SessionID)
	require.NotNil(t, got.Question)
	assert.Equal(t, []string{"a", "b"}, got.Question.Options)
}

func TestQuizHandler_SubmitAnswer(t *testing.T) {
	var gotID string
	var gotReq *dto.SubmitAnswerRequest
	mockSvc := &MockQuizService{
		SubmitAnswerFunc: func(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SessionResponse, error) {
			gotID = id
			gotReq = req
			return &dto.SessionResponse{SessionID: id, Answered: true}, nil
		},
	}
	app := newQuizApp(mockSvc)

	option := 2
	body, _ := json.Marshal(dto.SubmitAnswerRequest{QuestionIndex: 0, OptionIndex: &option})
	req := httptest.NewRequest("POST", "/api/sessions/s1/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "s1", gotID)
	require.NotNil(t, gotReq)
	require.NotNil(t, gotReq.OptionIndex)
	assert.Equal(t, 2, *gotReq.OptionIndex)
}

func TestQuizHandler_SessionNavigation(t *testing.T) {
	calls := map[string]string{}
	record := func(name string) func(ctx context.Context, id string) (*dto.SessionResponse, error) {
		return func(ctx context.Context, id string) (*dto.SessionResponse, error) {
			calls[name] = id
			return &dto.SessionResponse{SessionID: id}, nil
		}
	}
	mockSvc := &MockQuizService{
		GetSessionFunc: record("get"),
		AdvanceFunc:    record("advance"),
		RetreatFunc:    record("retreat"),
		FinishFunc:     record("finish"),
		RetakeFunc:     record("retake"),
	}
	app := newQuizApp(mockSvc)

	for _, tc := range []struct {
		method string
		path   string
		name   string
	}{
		{"GET", "/api/sessions/s9", "get"},
		{"POST", "/api/sessions/s9/advance", "advance"},
		{"POST", "/api/sessions/s9/retreat", "retreat"},
		{"POST", "/api/sessions/s9/finish", "finish"},
		{"POST", "/api/sessions/s9/retake", "retake"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err, tc.path)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, tc.path)
		assert.Equal(t, "s9", calls[tc.name], tc.path)
	}
}

func TestQuizHandler_SessionNotFound(t *testing.T) {
	mockSvc := &MockQuizService{
		GetSessionFunc: func(ctx context.Context, id string) (*dto.SessionResponse, error) {
			return nil, domain.NewSessionNotFoundError(id)
		},
	}
	app := newQuizApp(mockSvc)

	req := httptest.NewRequest("GET", "/api/sessions/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var errResp middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeSessionNotFound), errResp.Code)
}

func TestQuizHandler_AdvanceValidationError(t *testing.T) {
	mockSvc := &MockQuizService{
		AdvanceFunc: func(ctx context.Context, id string) (*dto.SessionResponse, error) {
			return nil, domain.NewValidationError("an answer is required before moving on")
		},
	}
	app := newQuizApp(mockSvc)

	req := httptest.NewRequest("POST", "/api/sessions/s1/advance", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
