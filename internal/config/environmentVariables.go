package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//ask requests buffer limit
	BufferLimit = 100

	//uploads
	MaxUploadSize      = 32 << 20 //32mb
	DocumentPreviewLen = 500

	//llm
	LLMProviderGemini    = "gemini"
	LLMProviderOpenAI    = "openai"
	LLMProviderAnthropic = "anthropic"
	DefaultLLMProvider   = LLMProviderGemini

	GeminiModelName    = "gemini-2.0-flash"
	OpenAIModelName    = "gpt-4o-mini"
	AnthropicModelName = "claude-3-5-haiku-latest"

	//generation parameters are fixed for the process lifetime
	ModelTemperature float64 = 0.7
	MaxOutputTokens  int32   = 1024

	//the adapter never waits longer than this for one answer
	GenerationTimeout = 60 * time.Second
	JobTimeout        = 90 * time.Second

	//shared backend http client
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
	HttpClientTimeout   = 75 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore = 0

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
	RedisPingTimeout = 3 * time.Second
	RedisIOTimeout   = 30 * time.Second
)
