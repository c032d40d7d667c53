package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultChatModel = "gpt-3.5-turbo"

// ChatCompletionsGenerator talks to any OpenAI-compatible /chat/completions endpoint.
type ChatCompletionsGenerator struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

var _ Generator = (*ChatCompletionsGenerator)(nil)

// NewChatCompletionsGenerator creates a generator for baseURL (e.g. https://api.openai.com/v1).
func NewChatCompletionsGenerator(baseURL, apiKey, model string) *ChatCompletionsGenerator {
	if model == "" {
		model = defaultChatModel
	}
	return &ChatCompletionsGenerator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{},
	}
}

func (g *ChatCompletionsGenerator) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Explain posts the prompt and returns the first choice's content.
func (g *ChatCompletionsGenerator) Explain(ctx context.Context, p Prompt) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", ErrServiceFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrServiceFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: call chat completions: %w", ErrServiceFailure, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrServiceFailure, err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(data, &parsed)

	if res.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("%w: chat completions returned status %d: %s", ErrServiceFailure, res.StatusCode, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: malformed response: %w", ErrServiceFailure, decodeErr)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrServiceFailure)
	}

	return parsed.Choices[0].Message.Content, nil
}
