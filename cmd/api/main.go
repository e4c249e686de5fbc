// @title           DocChat API
// @version         1.0
// @description     Chat with a single uploaded document. Questions are answered asynchronously; poll the status URL for the answer.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DocChat/internal/chat"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/customHttpClient"
	"github.com/akolanti/DocChat/internal/data/redisStore"
	"github.com/akolanti/DocChat/internal/data/store"
	"github.com/akolanti/DocChat/internal/domain/jobModel"
	"github.com/akolanti/DocChat/internal/handlers"
	"github.com/akolanti/DocChat/internal/job"
	"github.com/akolanti/DocChat/internal/llm"
	"github.com/akolanti/DocChat/internal/llm/anthropicLLM"
	"github.com/akolanti/DocChat/internal/llm/gemini"
	"github.com/akolanti/DocChat/internal/llm/openaiLLM"
	"github.com/akolanti/DocChat/internal/middleware"
	"github.com/akolanti/DocChat/internal/server"
	"github.com/akolanti/DocChat/internal/worker"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

var (
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	dotEnvErr := config.LoadDotEnv()
	settings, err := config.Load()

	logger_i.Init(settings.IsProd)
	var logger = logger_i.NewLogger("main")

	if dotEnvErr != nil {
		logger.Warn("Could not parse .env file", "error", dotEnvErr)
	}
	if err != nil {
		var credErr *config.CredentialError
		if errors.As(err, &credErr) {
			logger.Error("Missing API credential", "variable", credErr.Variable, "guidance", credErr.Guidance)
		} else {
			logger.Error("Invalid configuration", "error", err)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	//init buffered job channel
	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	llmProvider, err := newProvider(serviceContext, settings)
	if err != nil {
		logger.Error("LLM client failed to initialize. Shutting down.", "provider", settings.LLMProvider, "error", err)
		os.Exit(1)
	}
	logger.Info("LLM client ready", "provider", llmProvider.Name(), "model", settings.LLMModel)

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		SessionStore:      store.InitSessionStore(),
	}
	redisOpts := redisStore.Options{Addr: settings.RedisAddr, Password: settings.RedisPassword}
	if redisJobs := store.GetRedisJobStore(serviceContext, redisOpts); redisJobs != nil {
		serviceConfig.JobStore = redisJobs
	} else {
		logger.Warn("Redis job store is offline, keeping job status in memory")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	chatService := chat.NewService(llmProvider)

	handlers.InitJobHandler(service, chatService)
	middleware.InitAuth(settings.AuthToken)

	//init worker pool
	worker.InitServices(service, chatService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(settings.ListenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

// newProvider builds the one generation client used for the life of the
// process.
func newProvider(ctx context.Context, settings config.Settings) (llm.Provider, error) {
	opts := llm.ClientOptions{
		APIKey:     settings.LLMAPIKey,
		HTTPClient: customHttpClient.GetHttpClient(),
		Config:     llm.NewGenerationConfig(settings.LLMModel),
	}
	switch settings.LLMProvider {
	case config.LLMProviderOpenAI:
		return openaiLLM.GetOpenAIClient(opts), nil
	case config.LLMProviderAnthropic:
		return anthropicLLM.GetAnthropicClient(opts), nil
	case config.LLMProviderGemini:
		return gemini.GetGeminiClient(ctx, opts)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, settings.LLMProvider)
	}
}
