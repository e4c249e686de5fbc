package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "LLM_PROVIDER", "LLM_MODEL", "LISTEN_ADDR", "APP_ENV", "AUTH_TOKEN", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingCredential(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCredential))

	var credErr *CredentialError
	require.True(t, errors.As(err, &credErr))
	assert.Equal(t, "GOOGLE_API_KEY", credErr.Variable)
	assert.Contains(t, err.Error(), "aistudio.google.com")
}

func TestLoad_WhitespaceKeyIsMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "   ")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "test-key")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, LLMProviderGemini, s.LLMProvider)
	assert.Equal(t, GeminiModelName, s.LLMModel)
	assert.Equal(t, "test-key", s.LLMAPIKey)
	assert.Equal(t, ServerListenAddr, s.ListenAddr)
	assert.Equal(t, RedisAddr, s.RedisAddr)
	assert.False(t, s.IsProd)
	assert.False(t, s.AuthEnabled())
}

func TestLoad_OtherProviders(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4.1")
	t.Setenv("APP_ENV", "production")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, LLMProviderOpenAI, s.LLMProvider)
	assert.Equal(t, "gpt-4.1", s.LLMModel)
	assert.True(t, s.IsProd)

	t.Setenv("LLM_PROVIDER", "anthropic")
	_, err = Load()
	var credErr *CredentialError
	require.True(t, errors.As(err, &credErr))
	assert.Equal(t, "ANTHROPIC_API_KEY", credErr.Variable)
}

func TestLoad_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "llama")

	_, err := Load()
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("GOOGLE_API_KEY"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GOOGLE_API_KEY=from-dotenv\n"), 0600))
	require.NoError(t, LoadDotEnv(envFile))

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.LLMAPIKey)
}
