package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// AnthropicBackend calls the Anthropic Messages API through the official SDK.
type AnthropicBackend struct {
	client anthropic.Client
	model  string
}

// NewAnthropicBackend creates a Messages API backend. SDK retries are turned
// off; Guard decides what happens on failure.
func NewAnthropicBackend(apiKey, model, baseURL string) (backend *AnthropicBackend) {
	if model == "" {
		model = ClaudeModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	backend = &AnthropicBackend{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
	return backend
}

// Complete sends a single user message and joins the text blocks of the reply.
func (b *AnthropicBackend) Complete(ctx context.Context, req Request) (text string, err error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	var msg *anthropic.Message
	msg, err = b.client.Messages.New(ctx, params)
	if err != nil {
		err = errors.Wrap(err, "anthropic request failed")
		return text, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		err = errors.New("no text content in Claude response")
		return text, err
	}

	text = sb.String()
	return text, err
}
