package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"meal-concierge/internal/shared"
)

// ErrNoContent is returned when the model answers without usable text.
var ErrNoContent = errors.New("no content generated")

// GeminiClient is a TextGenerator backed by the Google Gemini API.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiClient creates a new Gemini API client for modelName.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	return &GeminiClient{client: client, model: model, modelName: modelName}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the generated text.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}
	return parseResponse(resp, c.modelName)
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func parseResponse(resp *genai.GenerateContentResponse, modelName string) (ContentResponse, error) {
	out := ContentResponse{Usage: shared.TokenUsage{Model: modelName}}
	if resp == nil {
		return out, ErrNoContent
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage.PromptTokens = int(u.PromptTokenCount)
		out.Usage.CompletionTokens = int(u.CandidatesTokenCount)
		out.Usage.TotalTokens = int(u.TotalTokenCount)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, ErrNoContent
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return out, fmt.Errorf("%w: response has no text parts", ErrNoContent)
	}
	out.Content = strings.TrimSpace(b.String())
	return out, nil
}
