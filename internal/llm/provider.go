package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/DocChat/internal/config"
)

// Provider is one hosted text-generation backend. Implementations make exactly
// one call per Generate and never retry.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationConfig is fixed at startup and shared read-only by every call.
type GenerationConfig struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int32
}

// ClientOptions is what every provider needs to build its SDK client.
// BaseURL is empty in production and points at a fake server in tests.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Config     GenerationConfig
}

func NewGenerationConfig(model string) GenerationConfig {
	return GenerationConfig{
		Model:           model,
		Temperature:     config.ModelTemperature,
		MaxOutputTokens: config.MaxOutputTokens,
	}
}

var ErrEmptyResponse = errors.New("backend returned no text")

// GenerationError wraps any backend failure: transport, auth, quota or a
// response without text.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func NewGenerationError(provider string, err error) *GenerationError {
	return &GenerationError{Provider: provider, Err: err}
}
