package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DocChat/internal/llm"
	"github.com/akolanti/DocChat/pkg/logger_i"
	"google.golang.org/genai"
)

const Name = "gemini"

type llmClient struct {
	client        *genai.Client
	modelName     string
	contentConfig *genai.GenerateContentConfig
}

var logger = logger_i.NewLogger("llm_gemini")
var geminiClient *llmClient
var initErr error
var once sync.Once

// GetGeminiClient builds the process-wide Gemini client on first use and
// returns the same instance afterwards.
func GetGeminiClient(ctx context.Context, opts llm.ClientOptions) (llm.Provider, error) {
	once.Do(func() {
		geminiClient, initErr = newGeminiClient(ctx, opts)
	})
	if initErr != nil {
		return nil, initErr
	}
	return geminiClient, nil
}

func newGeminiClient(ctx context.Context, opts llm.ClientOptions) (*llmClient, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	c, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	logger.Info("Gemini client created", "model", opts.Config.Model)
	return &llmClient{
		client:    c,
		modelName: opts.Config.Model,
		contentConfig: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(opts.Config.Temperature)),
			MaxOutputTokens: opts.Config.MaxOutputTokens,
		},
	}, nil
}

func (c *llmClient) Name() string {
	return Name
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.WithTrace(ctx)
	log.Debug("Sending Gemini request", "model", c.modelName, "prompt_length", len(prompt))

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		c.contentConfig,
	)
	if err != nil {
		log.Error("Gemini request failed", "error", err)
		return "", llm.NewGenerationError(Name, err)
	}

	text := result.Text()
	if text == "" {
		err = emptyResponseError(result)
		log.Error("Gemini returned no text", "error", err)
		return "", llm.NewGenerationError(Name, err)
	}
	return text, nil
}

func emptyResponseError(result *genai.GenerateContentResponse) error {
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("%w: prompt blocked (%s)", llm.ErrEmptyResponse, result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason != "" {
		return fmt.Errorf("%w: finish reason %s", llm.ErrEmptyResponse, result.Candidates[0].FinishReason)
	}
	return llm.ErrEmptyResponse
}
