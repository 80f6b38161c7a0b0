package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// OpenAIAPIEndpoint is the default chat completions base URL.
const OpenAIAPIEndpoint = "https://api.openai.com/v1"

// OpenAIBackend talks to any OpenAI-compatible chat completions API.
type OpenAIBackend struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewOpenAIBackend creates a chat completions backend. An empty baseURL
// selects the public OpenAI API.
func NewOpenAIBackend(apiKey, model, baseURL string) (backend *OpenAIBackend) {
	if model == "" {
		model = OpenAIModel
	}
	if baseURL == "" {
		baseURL = OpenAIAPIEndpoint
	}
	backend = &OpenAIBackend{
		apiKey:     apiKey,
		model:      model,
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/chat/completions",
		httpClient: &http.Client{},
	}
	return backend
}

// Complete sends one system + user exchange and returns the first choice.
func (b *OpenAIBackend) Complete(ctx context.Context, req Request) (text string, err error) {
	chatReq := ChatRequest{
		Model:       b.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, Message{Role: "system", Content: req.System})
	}
	chatReq.Messages = append(chatReq.Messages, Message{Role: "user", Content: req.Prompt})

	var reqBody []byte
	reqBody, err = json.Marshal(chatReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)

	var resp *http.Response
	resp, err = b.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return text, err
	}

	var chatResp ChatResponse
	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse chat response: %s", string(respBody))
		return text, err
	}

	if len(chatResp.Choices) == 0 {
		err = errors.New("no choices in chat response")
		return text, err
	}

	text = chatResp.Choices[0].Message.Content
	return text, err
}
