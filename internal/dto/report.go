package dto

import "time"

// GenerateReportRequest is the body of POST /api/reports
type GenerateReportRequest struct {
	Topic      string   `json:"topic"`
	Length     string   `json:"length"`
	Formatting []string `json:"formatting"`
}

// ReportResponse carries a generated report plus its browser preview HTML
type ReportResponse struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	Length      string    `json:"length"`
	Content     string    `json:"content"`
	PreviewHTML string    `json:"preview_html"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DownloadReportRequest is the body of POST /api/reports/download
type DownloadReportRequest struct {
	Content string `json:"content"`
	Format  string `json:"format"`
}

// FileDownload is a binary attachment produced by an export operation
type FileDownload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
