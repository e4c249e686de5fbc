package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("missing LLM API credential")

var ErrUnknownProvider = errors.New("unknown LLM provider")

// Settings is everything read from the process environment at startup.
type Settings struct {
	IsProd        bool
	ListenAddr    string
	LLMProvider   string
	LLMModel      string
	LLMAPIKey     string
	RedisAddr     string
	RedisPassword string
	AuthToken     string
}

type providerEnv struct {
	keyVar   string
	model    string
	guidance string
}

var providers = map[string]providerEnv{
	LLMProviderGemini: {
		keyVar:   "GOOGLE_API_KEY",
		model:    GeminiModelName,
		guidance: "You can get an API key from Google AI Studio (aistudio.google.com).",
	},
	LLMProviderOpenAI: {
		keyVar:   "OPENAI_API_KEY",
		model:    OpenAIModelName,
		guidance: "You can create an API key at platform.openai.com/api-keys.",
	},
	LLMProviderAnthropic: {
		keyVar:   "ANTHROPIC_API_KEY",
		model:    AnthropicModelName,
		guidance: "You can create an API key at console.anthropic.com.",
	},
}

// LoadDotEnv reads a .env file from the working directory if there is one.
// A missing file is not an error, the process environment is used as is.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load builds Settings from the environment. The credential of the selected
// provider is the only required value.
func Load() (Settings, error) {
	s := Settings{
		IsProd:        strings.EqualFold(os.Getenv("APP_ENV"), "production"),
		ListenAddr:    getEnv("LISTEN_ADDR", ServerListenAddr),
		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", DefaultLLMProvider)),
		RedisAddr:     getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AuthToken:     os.Getenv("AUTH_TOKEN"),
	}

	p, ok := providers[s.LLMProvider]
	if !ok {
		return s, fmt.Errorf("%w: %q (use gemini, openai or anthropic)", ErrUnknownProvider, s.LLMProvider)
	}
	s.LLMModel = getEnv("LLM_MODEL", p.model)
	s.LLMAPIKey = strings.TrimSpace(os.Getenv(p.keyVar))
	if s.LLMAPIKey == "" {
		return s, &CredentialError{Variable: p.keyVar, Guidance: p.guidance}
	}
	return s, nil
}

// CredentialError reports which variable is unset and how to obtain a key.
type CredentialError struct {
	Variable string
	Guidance string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s is not set. Set it as an environment variable or in a .env file. %s", e.Variable, e.Guidance)
}

func (e *CredentialError) Unwrap() error {
	return ErrMissingCredential
}

// AuthEnabled is false when no AUTH_TOKEN was configured.
func (s Settings) AuthEnabled() bool {
	return s.AuthToken != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
