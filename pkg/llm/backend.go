package llm

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// ProviderOpenAI selects an OpenAI-compatible chat completions API.
	ProviderOpenAI = "openai"
	// ProviderAnthropic selects the Anthropic Messages API.
	ProviderAnthropic = "anthropic"
	// ProviderGemini selects the Google Gemini API.
	ProviderGemini = "gemini"

	// OpenAIModel is the default OpenAI model.
	OpenAIModel = "gpt-4o-mini"
	// ClaudeModel is the default Anthropic model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// GeminiModel is the default Gemini model.
	GeminiModel = "gemini-2.0-flash"
)

// Request is a single prompt sent to a backend.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// Recoverable marks requests whose caller falls back on failure. Only
	// these are counted and short-circuited by the circuit breaker.
	Recoverable bool
}

// Backend turns a prompt into generated text. Implementations hold no
// session state between calls.
type Backend interface {
	Complete(ctx context.Context, req Request) (text string, err error)
}

// BreakerSettings configures the circuit breaker placed in front of a backend.
type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings returns the breaker used when none is configured.
func DefaultBreakerSettings() (settings BreakerSettings) {
	settings = BreakerSettings{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
	return settings
}

// Settings carries everything needed to construct a backend. Callers pass it
// explicitly; nothing in this package reads the environment.
type Settings struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	RequestsPerMinute float64
	Breaker           BreakerSettings
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) (model string) {
	switch strings.ToLower(provider) {
	case ProviderAnthropic:
		model = ClaudeModel
	case ProviderGemini:
		model = GeminiModel
	default:
		model = OpenAIModel
	}
	return model
}

// IsKnownProvider reports whether NewBackend can build the named provider.
func IsKnownProvider(provider string) (known bool) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		known = true
	}
	return known
}

// NewBackend builds the configured provider and wraps it in a Guard.
func NewBackend(ctx context.Context, settings Settings, log logrus.FieldLogger) (backend Backend, err error) {
	model := settings.Model
	if model == "" {
		model = DefaultModel(settings.Provider)
	}

	var provider Backend
	switch strings.ToLower(settings.Provider) {
	case ProviderOpenAI, "":
		provider = NewOpenAIBackend(settings.APIKey, model, settings.BaseURL)
	case ProviderAnthropic:
		provider = NewAnthropicBackend(settings.APIKey, model, settings.BaseURL)
	case ProviderGemini:
		provider, err = NewGeminiBackend(ctx, settings.APIKey, model, settings.BaseURL)
		if err != nil {
			err = errors.Wrap(err, "failed to create Gemini client")
			return backend, err
		}
	default:
		err = errors.Errorf("unknown provider %q", settings.Provider)
		return backend, err
	}

	backend = NewGuard(provider, settings.RequestsPerMinute, settings.Breaker, log)
	return backend, err
}
