package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runMainEnv = "DOCCHAT_RUN_MAIN"

func TestMissingCredentialExits(t *testing.T) {
	if os.Getenv(runMainEnv) == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMissingCredentialExits$")
	cmd.Dir = t.TempDir()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "GOOGLE_API_KEY=") || strings.HasPrefix(kv, "LLM_PROVIDER=") {
			continue
		}
		cmd.Env = append(cmd.Env, kv)
	}
	cmd.Env = append(cmd.Env, runMainEnv+"=1", "LISTEN_ADDR=127.0.0.1:0")

	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected non-zero exit, got %v\n%s", err, out)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "GOOGLE_API_KEY")
	assert.Contains(t, string(out), "aistudio.google.com")
	assert.NotContains(t, string(out), "Server is listening")
}

func TestNewProvider(t *testing.T) {
	cases := map[string]string{
		config.LLMProviderOpenAI:    "openai",
		config.LLMProviderAnthropic: "anthropic",
	}
	for providerName, want := range cases {
		t.Run(providerName, func(t *testing.T) {
			p, err := newProvider(context.Background(), config.Settings{LLMProvider: providerName, LLMAPIKey: "k", LLMModel: "m"})
			require.NoError(t, err)
			assert.Equal(t, want, p.Name())
		})
	}

	_, err := newProvider(context.Background(), config.Settings{LLMProvider: "nope"})
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}
