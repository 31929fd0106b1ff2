package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"studyforge/internal/adapter/export"
	"studyforge/internal/adapter/generation"
	"studyforge/internal/cache"
	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/quizplay"
	"studyforge/internal/util"
	"studyforge/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SessionStore is the port for keeping quiz playback sessions between
// requests. Implemented by repository.RedisSessionStore.
type SessionStore interface {
	Save(ctx context.Context, session *quizplay.Session) error
	Get(ctx context.Context, id string) (*quizplay.Session, error)
	Delete(ctx context.Context, id string) error
}

// QuizService defines the interface for quiz generation, export and
// interactive play-through.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error)
	DownloadQuiz(ctx context.Context, quiz domain.Quiz) (*dto.FileDownload, error)

	StartSession(ctx context.Context, quiz domain.Quiz) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	SubmitAnswer(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SessionResponse, error)
	Advance(ctx context.Context, id string) (*dto.SessionResponse, error)
	Retreat(ctx context.Context, id string) (*dto.SessionResponse, error)
	Finish(ctx context.Context, id string) (*dto.SessionResponse, error)
	Retake(ctx context.Context, id string) (*dto.SessionResponse, error)
}

// quizService implements QuizService
type quizService struct {
	generator  domain.ContentGenerator
	rasterizer domain.PDFRasterizer
	cache      domain.Cache
	sessions   SessionStore
	cfg        *config.Config
	validator  *validation.Validator
	group      singleflight.Group
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	generator domain.ContentGenerator,
	rasterizer domain.PDFRasterizer,
	cacheAdapter domain.Cache,
	sessions SessionStore,
	cfg *config.Config,
) QuizService {
	return &quizService{
		generator:  generator,
		rasterizer: rasterizer,
		cache:      cacheAdapter,
		sessions:   sessions,
		cfg:        cfg,
		validator:  validation.NewValidator(),
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*domain.Quiz, error) {
	if err := s.validator.ValidateQuizRequest(req); err != nil {
		return nil, err
	}

	types := make([]domain.QuestionType, 0, len(req.Types))
	for _, t := range req.Types {
		types = append(types, domain.QuestionType(t))
	}

	cacheKey := cache.GenerateCacheKey("quiz", "generated",
		requestDigest(req.Topic, strings.Join(req.Types, ","), req.Difficulty), strconv.Itoa(req.NumQuestions))
	if quiz, ok := s.cachedQuiz(ctx, cacheKey); ok {
		return quiz, nil
	}

	result, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		prompt := generation.BuildQuizPrompt(generation.QuizPromptData{
			Topic:        req.Topic,
			Types:        types,
			NumQuestions: req.NumQuestions,
			Difficulty:   req.Difficulty,
		})

		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, domain.NewGenerationError(err)
		}

		quiz, err := generation.ParseQuizResponse(raw)
		if err != nil {
			logger.Get().Error("QuizService: model returned unparseable quiz",
				zap.Error(err), zap.String("topic", req.Topic))
			return nil, err
		}
		quiz.ID = uuid.NewString()
		s.storeQuiz(ctx, cacheKey, quiz)
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Quiz), nil
}

// DownloadQuiz implements QuizService
func (s *quizService) DownloadQuiz(ctx context.Context, quiz domain.Quiz) (*dto.FileDownload, error) {
	if len(quiz.Questions) == 0 {
		return nil, domain.NewInvalidInputError("quiz has no questions")
	}
	page := export.QuizPage(export.BuildQuizHTML(quiz))
	pdf, err := s.rasterizer.Rasterize(ctx, page)
	if err != nil {
		return nil, domain.NewExportError("Failed to render quiz PDF", err)
	}
	return &dto.FileDownload{
		FileName:    "quiz.pdf",
		ContentType: "application/pdf",
		Data:        pdf,
	}, nil
}

// StartSession implements QuizService
func (s *quizService) StartSession(ctx context.Context, quiz domain.Quiz) (*dto.SessionResponse, error) {
	if len(quiz.Questions) == 0 {
		return nil, domain.NewInvalidInputError("quiz has no questions")
	}
	session := quizplay.NewSession(util.NewULID(), quiz)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// GetSession implements QuizService
func (s *quizService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// SubmitAnswer implements QuizService
func (s *quizService) SubmitAnswer(ctx context.Context, id string, req *dto.SubmitAnswerRequest) (*dto.SessionResponse, error) {
	return s.mutateSession(ctx, id, func(session *quizplay.Session) error {
		session.SubmitAnswer(req.QuestionIndex, quizplay.Answer{
			OptionIndex: req.OptionIndex,
			Text:        req.Text,
		})
		return nil
	})
}

// Advance implements QuizService
func (s *quizService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutateSession(ctx, id, (*quizplay.Session).Advance)
}

// Retreat implements QuizService
func (s *quizService) Retreat(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutateSession(ctx, id, (*quizplay.Session).Retreat)
}

// Finish implements QuizService
func (s *quizService) Finish(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutateSession(ctx, id, (*quizplay.Session).Finish)
}

// Retake implements QuizService
func (s *quizService) Retake(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutateSession(ctx, id, func(session *quizplay.Session) error {
		session.Retake()
		return nil
	})
}

func (s *quizService) mutateSession(ctx context.Context, id string, op func(*quizplay.Session) error) (*dto.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func toSessionResponse(session *quizplay.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID: session.ID,
		Topic:     session.Quiz.Topic,
		State:     string(session.State),
		Current:   session.Current,
		Total:     len(session.Quiz.Questions),
	}
	if session.State == quizplay.StateFinished {
		result := session.Result()
		resp.Result = &result
		return resp
	}

	_, resp.Answered = session.Answers[session.Current]
	if question := session.CurrentQuestion(); question != nil {
		view := &dto.QuestionView{
			Index:    session.Current,
			Type:     string(question.Type()),
			Question: question.Prompt(),
		}
		switch q := question.(type) {
		case domain.MCQQuestion:
			view.Options = q.Options
		case domain.FlashcardQuestion:
			view.Back = q.Answer
		}
		resp.Question = view
	}
	return resp
}

func (s *quizService) cachedQuiz(ctx context.Context, key string) (*domain.Quiz, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("QuizService: cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		logger.Get().Warn("QuizService: dropping undecodable cache entry", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	return &quiz, true
}

func (s *quizService) storeQuiz(ctx context.Context, key string, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cfg.Cache.QuizTTL); err != nil {
		logger.Get().Warn("QuizService: cache write failed", zap.Error(err), zap.String("key", key))
	}
}

