package generation

import (
	"context"
	"fmt"
	"time"

	"studyforge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GoogleAIGenerator generates content through the Gemini API.
type GoogleAIGenerator struct {
	llm     *googleai.GoogleAI
	timeout time.Duration
}

// NewGoogleAIGenerator creates a Gemini-backed generator.
func NewGoogleAIGenerator(ctx context.Context, apiKey, model string, timeout time.Duration) (*GoogleAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("googleai: API key cannot be empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("googleai: failed to create client: %w", err)
	}
	return &GoogleAIGenerator{llm: llm, timeout: timeout}, nil
}

// Generate implements domain.ContentGenerator
func (g *GoogleAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("googleai: generation failed: %w", err)
	}
	return response, nil
}

var _ domain.ContentGenerator = (*GoogleAIGenerator)(nil)
