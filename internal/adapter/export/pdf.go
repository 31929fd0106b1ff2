package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"studyforge/internal/domain"
)

// HTTPRasterizer calls a headless-browser rendering service over HTTP: it
// posts a complete HTML page and receives PDF bytes back.
type HTTPRasterizer struct {
	serviceURL string
	client     *http.Client
}

// NewHTTPRasterizer creates a rasterizer client for the given service URL.
func NewHTTPRasterizer(serviceURL string, timeout time.Duration) *HTTPRasterizer {
	return &HTTPRasterizer{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     10 * time.Second,
			},
		},
	}
}

// Rasterize implements domain.PDFRasterizer
func (r *HTTPRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.serviceURL, bytes.NewBufferString(html))
	if err != nil {
		return nil, fmt.Errorf("rasterizer: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.Header.Set("Accept", "application/pdf")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rasterizer: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: failed to read response: %w", err)
	}
	return pdf, nil
}

var _ domain.PDFRasterizer = (*HTTPRasterizer)(nil)
