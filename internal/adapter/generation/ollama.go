package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"studyforge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaGenerator generates content through a local Ollama server. Useful for
// development without burning API quota.
type OllamaGenerator struct {
	llm     *ollama.LLM
	timeout time.Duration
}

// NewOllamaGenerator creates an Ollama-backed generator.
func NewOllamaGenerator(serverURL, model string, timeout time.Duration) (*OllamaGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama: server URL cannot be empty")
	}
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create client: %w", err)
	}
	return &OllamaGenerator{llm: llm, timeout: timeout}, nil
}

// Generate implements domain.ContentGenerator
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("ollama: generation failed: %w", err)
	}
	return response, nil
}

var _ domain.ContentGenerator = (*OllamaGenerator)(nil)
