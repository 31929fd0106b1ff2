// @title StudyForge API
// @version 1.0
// @description Generates reports and quizzes from a topic, exports them to PDF/Word, and drives interactive quiz sessions.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyforge/internal/adapter"
	"studyforge/internal/adapter/export"
	"studyforge/internal/adapter/generation"
	"studyforge/internal/cache"
	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/handler"
	"studyforge/internal/logger"
	"studyforge/internal/middleware"
	"studyforge/internal/repository"
	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (domain.ContentGenerator, error) {
	llmCfg := cfg.LLM
	switch llmCfg.Provider {
	case "googleai":
		return generation.NewGoogleAIGenerator(ctx, llmCfg.APIKey, llmCfg.Model, llmCfg.Timeout)
	case "openai":
		return generation.NewOpenAIGenerator(llmCfg.APIKey, llmCfg.Model, llmCfg.Timeout)
	case "ollama":
		return generation.NewOllamaGenerator(llmCfg.ServerURL, llmCfg.Model, llmCfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmCfg.Provider)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Initialize generation provider
	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create content generator", zap.Error(err))
	}
	appLogger.Info("Content generator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	// Initialize PDF rasterizer
	rasterizer := export.NewHTTPRasterizer(cfg.Export.RasterizerURL, cfg.Export.Timeout)
	appLogger.Info("PDF rasterizer initialized", zap.String("url", cfg.Export.RasterizerURL))

	// Initialize Redis: generation cache + session store
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	sessionStore := repository.NewRedisSessionStore(redisClient, cfg.Cache.SessionTTL)

	// Initialize services
	reportService := service.NewReportService(generator, rasterizer, cacheAdapter, cfg)
	quizService := service.NewQuizService(generator, rasterizer, cacheAdapter, sessionStore, cfg)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService)
	quizHandler := handler.NewQuizHandler(quizService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	apiGroup.Post("/reports", reportHandler.GenerateReport)
	apiGroup.Post("/reports/download", reportHandler.DownloadReport)

	apiGroup.Post("/quizzes", quizHandler.GenerateQuiz)
	apiGroup.Post("/quizzes/download", quizHandler.DownloadQuiz)

	sessionGroup := apiGroup.Group("/sessions")
	sessionGroup.Post("/", quizHandler.StartSession)
	sessionGroup.Get("/:id", quizHandler.GetSession)
	sessionGroup.Post("/:id/answers", quizHandler.SubmitAnswer)
	sessionGroup.Post("/:id/advance", quizHandler.Advance)
	sessionGroup.Post("/:id/retreat", quizHandler.Retreat)
	sessionGroup.Post("/:id/finish", quizHandler.Finish)
	sessionGroup.Post("/:id/retake", quizHandler.Retake)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
