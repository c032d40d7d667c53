package narrative

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator implements Generator for Google's Gemini models.
type GeminiGenerator struct {
	APIKey string
	Model  string
}

var _ Generator = (*GeminiGenerator)(nil)

func (g *GeminiGenerator) Name() string { return "gemini" }

// Explain sends a generateContent request using the GenAI SDK.
func (g *GeminiGenerator) Explain(ctx context.Context, p Prompt) (string, error) {
	model := g.Model
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to create GenAI client: %w", ErrServiceFailure, err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
	}
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.System}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generation failed: %w", ErrServiceFailure, err)
	}

	return result.Text(), nil
}
