package openaiLLM

import (
	"context"
	"sync"

	"github.com/akolanti/DocChat/internal/llm"
	"github.com/akolanti/DocChat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const Name = "openai"

type llmClient struct {
	client openai.Client
	config llm.GenerationConfig
}

var logger = logger_i.NewLogger("llm_openai")
var openAIClient *llmClient
var once sync.Once

// GetOpenAIClient builds the process-wide OpenAI client on first use.
func GetOpenAIClient(opts llm.ClientOptions) llm.Provider {
	once.Do(func() {
		openAIClient = newOpenAIClient(opts)
	})
	return openAIClient
}

func newOpenAIClient(opts llm.ClientOptions) *llmClient {
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

	logger.Info("OpenAI client created", "model", opts.Config.Model)
	return &llmClient{client: openai.NewClient(options...), config: opts.Config}
}

func (c *llmClient) Name() string {
	return Name
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.WithTrace(ctx)
	log.Debug("Sending OpenAI request", "model", c.config.Model, "prompt_length", len(prompt))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.config.Model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(c.config.Temperature),
		MaxTokens:   openai.Int(int64(c.config.MaxOutputTokens)),
	})
	if err != nil {
		log.Error("OpenAI request failed", "error", err)
		return "", llm.NewGenerationError(Name, err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		log.Error("OpenAI returned no text")
		return "", llm.NewGenerationError(Name, llm.ErrEmptyResponse)
	}
	return completion.Choices[0].Message.Content, nil
}
