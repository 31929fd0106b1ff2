package domain

import "time"

// ReportLength is the requested length band for a generated report.
type ReportLength string

const (
	LengthShort  ReportLength = "short"
	LengthMedium ReportLength = "medium"
	LengthLong   ReportLength = "long"
)

// Report is a generated markdown document plus its request metadata.
type Report struct {
	ID          string       `json:"id"`
	Topic       string       `json:"topic"`
	Length      ReportLength `json:"length"`
	Content     string       `json:"content"`
	GeneratedAt time.Time    `json:"generated_at"`
}
