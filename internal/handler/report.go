package handler

import (
	"fmt"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	service service.ReportService
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GenerateReport godoc
// @Summary Generate a report
// @Description Generates a markdown report about the given topic
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.GenerateReportRequest true "Report request"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}

	resp, err := h.service.GenerateReport(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DownloadReport godoc
// @Summary Download a report
// @Description Exports report content as a PDF or Word attachment
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Param request body dto.DownloadReportRequest true "Download request"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /reports/download [post]
func (h *ReportHandler) DownloadReport(c *fiber.Ctx) error {
	var req dto.DownloadReportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}

	file, err := h.service.DownloadReport(c.Context(), &req)
	if err != nil {
		return err
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *dto.FileDownload) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.Send(file.Data)
}
