package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studyforge/internal/adapter/export"
	"studyforge/internal/adapter/generation"
	"studyforge/internal/cache"
	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/markdown"
	"studyforge/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReportService defines the interface for report generation and export
type ReportService interface {
	GenerateReport(ctx context.Context, req *dto.GenerateReportRequest) (*dto.ReportResponse, error)
	DownloadReport(ctx context.Context, req *dto.DownloadReportRequest) (*dto.FileDownload, error)
}

// reportService implements ReportService
type reportService struct {
	generator  domain.ContentGenerator
	rasterizer domain.PDFRasterizer
	cache      domain.Cache
	cfg        *config.Config
	validator  *validation.Validator
	group      singleflight.Group
}

// NewReportService creates a new instance of reportService
func NewReportService(
	generator domain.ContentGenerator,
	rasterizer domain.PDFRasterizer,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) ReportService {
	return &reportService{
		generator:  generator,
		rasterizer: rasterizer,
		cache:      cacheAdapter,
		cfg:        cfg,
		validator:  validation.NewValidator(),
	}
}

// GenerateReport implements ReportService. Identical concurrent requests are
// collapsed into one model call; results are cached under a request digest.
func (s *reportService) GenerateReport(ctx context.Context, req *dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	if err := s.validator.ValidateReportRequest(req); err != nil {
		return nil, err
	}

	cacheKey := cache.GenerateCacheKey("report", "content", requestDigest(req.Topic, req.Length, strings.Join(req.Formatting, ",")))
	if report, ok := s.cachedReport(ctx, cacheKey); ok {
		return s.toResponse(report), nil
	}

	result, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		prompt := generation.BuildReportPrompt(generation.ReportPromptData{
			Topic:      req.Topic,
			Length:     domain.ReportLength(req.Length),
			Formatting: req.Formatting,
		})

		content, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, domain.NewGenerationError(err)
		}

		report := &domain.Report{
			ID:          uuid.NewString(),
			Topic:       req.Topic,
			Length:      domain.ReportLength(req.Length),
			Content:     content,
			GeneratedAt: time.Now().UTC(),
		}
		s.storeReport(ctx, cacheKey, report)
		return report, nil
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(result.(*domain.Report)), nil
}

// DownloadReport implements ReportService
func (s *reportService) DownloadReport(ctx context.Context, req *dto.DownloadReportRequest) (*dto.FileDownload, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.NewInvalidInputError("content is required")
	}

	switch req.Format {
	case "pdf":
		page := export.ReportPage(markdown.RenderHTML(req.Content))
		pdf, err := s.rasterizer.Rasterize(ctx, page)
		if err != nil {
			return nil, domain.NewExportError("Failed to render PDF", err)
		}
		return &dto.FileDownload{
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		}, nil
	case "docx":
		data, err := export.BuildDocx(markdown.Parse(req.Content))
		if err != nil {
			return nil, domain.NewExportError("Failed to build Word document", err)
		}
		return &dto.FileDownload{
			FileName:    "report.docx",
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Data:        data,
		}, nil
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid download format: %s", req.Format))
	}
}

func (s *reportService) toResponse(report *domain.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:          report.ID,
		Topic:       report.Topic,
		Length:      string(report.Length),
		Content:     report.Content,
		PreviewHTML: markdown.RenderHTML(report.Content),
		GeneratedAt: report.GeneratedAt,
	}
}

func (s *reportService) cachedReport(ctx context.Context, key string) (*domain.Report, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("ReportService: cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}
	var report domain.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		logger.Get().Warn("ReportService: dropping undecodable cache entry", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	return &report, true
}

func (s *reportService) storeReport(ctx context.Context, key string, report *domain.Report) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cfg.Cache.ReportTTL); err != nil {
		logger.Get().Warn("ReportService: cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// requestDigest hashes request parameters into a fixed-width cache key part,
// keeping user input out of the key space.
func requestDigest(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%x", sum[:16])
}
