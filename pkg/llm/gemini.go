package llm

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a Gemini API backend.
func NewGeminiBackend(ctx context.Context, apiKey, model, baseURL string) (backend *GeminiBackend, err error) {
	if model == "" {
		model = GeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	var client *genai.Client
	client, err = genai.NewClient(ctx, cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to create genai client")
		return backend, err
	}

	backend = &GeminiBackend{
		client: client,
		model:  model,
	}
	return backend, err
}

// Complete generates content for a single text prompt.
func (b *GeminiBackend) Complete(ctx context.Context, req Request) (text string, err error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens), //nolint:gosec // token caps are small constants
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	var resp *genai.GenerateContentResponse
	resp, err = b.client.Models.GenerateContent(ctx, b.model, genai.Text(req.Prompt), config)
	if err != nil {
		err = errors.Wrap(err, "gemini request failed")
		return text, err
	}

	text = resp.Text()
	if text == "" {
		err = errors.New("no text content in Gemini response")
		return text, err
	}

	return text, err
}
