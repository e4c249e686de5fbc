package anthropicLLM

import (
	"context"
	"strings"
	"sync"

	"github.com/akolanti/DocChat/internal/llm"
	"github.com/akolanti/DocChat/pkg/logger_i"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const Name = "anthropic"

type llmClient struct {
	client anthropic.Client
	config llm.GenerationConfig
}

var logger = logger_i.NewLogger("llm_anthropic")
var anthropicClient *llmClient
var once sync.Once

// GetAnthropicClient builds the process-wide Anthropic client on first use.
func GetAnthropicClient(opts llm.ClientOptions) llm.Provider {
	once.Do(func() {
		anthropicClient = newAnthropicClient(opts)
	})
	return anthropicClient
}

func newAnthropicClient(opts llm.ClientOptions) *llmClient {
	options := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.HTTPClient != nil {
		options = append(options, option.WithHTTPClient(opts.HTTPClient))
	}
	if opts.BaseURL != "" {
		options = append(options, option.WithBaseURL(opts.BaseURL))
	}

	logger.Info("Anthropic client created", "model", opts.Config.Model)
	return &llmClient{client: anthropic.NewClient(options...), config: opts.Config}
}

func (c *llmClient) Name() string {
	return Name
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.WithTrace(ctx)
	log.Debug("Sending Anthropic request", "model", c.config.Model, "prompt_length", len(prompt))

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxOutputTokens),
		Temperature: anthropic.Float(c.config.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Error("Anthropic request failed", "error", err)
		return "", llm.NewGenerationError(Name, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		log.Error("Anthropic returned no text", "stop_reason", message.StopReason)
		return "", llm.NewGenerationError(Name, llm.ErrEmptyResponse)
	}
	return text.String(), nil
}
