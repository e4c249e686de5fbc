package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewGenerationConfig(t *testing.T) {
	cfg := NewGenerationConfig("some-model")

	assert.Equal(t, "some-model", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, int32(1024), cfg.MaxOutputTokens)
	assert.Equal(t, config.ModelTemperature, cfg.Temperature)
}

func TestGenerationError(t *testing.T) {
	err := NewGenerationError("gemini", context.DeadlineExceeded)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "gemini generation failed")

	var genErr *GenerationError
	assert.True(t, errors.As(error(err), &genErr))
	assert.Equal(t, "gemini", genErr.Provider)
}
