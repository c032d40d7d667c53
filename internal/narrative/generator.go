// Package narrative produces a conversational explanation of a projection by
// calling an external language-model service.
//
// Failures here never affect the numeric result: callers render the numbers
// first and report narrative errors separately.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/finbuddy/internal/config"
)

// ErrServiceFailure wraps every error returned by a narrative provider.
var ErrServiceFailure = errors.New("narrative service failure")

// Generator explains a projection in natural language.
type Generator interface {
	Explain(ctx context.Context, p Prompt) (string, error)
	Name() string
}

// NewGenerator returns the generator selected by settings, or nil when
// narratives are disabled.
func NewGenerator(s config.Settings) (Generator, error) {
	switch s.Provider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderGemini:
		if s.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return &GeminiGenerator{APIKey: s.GeminiAPIKey, Model: s.Model}, nil
	case config.ProviderOpenAI:
		if s.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewChatCompletionsGenerator(s.OpenAIBaseURL, s.OpenAIAPIKey, s.Model), nil
	case config.ProviderStatic:
		return StaticGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", s.Provider)
	}
}

// Narrate calls g with a deadline and normalises the outcome. The returned
// text is cleaned of wrapping code fences.
func Narrate(ctx context.Context, g Generator, timeout time.Duration, p Prompt) (string, error) {
	if g == nil {
		return "", fmt.Errorf("%w: no narrative provider configured", ErrServiceFailure)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := g.Explain(ctx, p)
	if err != nil {
		if errors.Is(err, ErrServiceFailure) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %w", ErrServiceFailure, g.Name(), err)
	}

	text = CleanMarkdown(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s returned an empty response", ErrServiceFailure, g.Name())
	}
	return text, nil
}
