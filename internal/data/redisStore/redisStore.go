package redisStore

import (
	"context"
	"strconv"
	"sync"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
	logger    = logger_i.NewLogger("Redis Store")
	once      sync.Once
)

type Store struct {
	client *redis.Client
	Type   int
}

type Options struct {
	Addr     string
	Password string
}

// GetRedisStore returns one shared store per logical database. It returns
// nil when the server does not answer a ping.
func GetRedisStore(ctx context.Context, dbType int, opts Options) *Store {
	mu.RLock()
	instance, exists := instances[dbType]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[dbType]; exists {
		return instance
	}
	return createNewStore(ctx, dbType, opts)
}

func closeRedisStores(ctx context.Context) {
	<-ctx.Done()
	logger.Info("Closing Redis Stores")
	mu.Lock()
	defer mu.Unlock()
	for dbType, store := range instances {
		if err := store.client.Close(); err != nil {
			logger.Error("Error closing redis client", "db", dbType, "error", err)
		}
		delete(instances, dbType)
	}
	logger.Info("Redis Store Closed successfully")
}

func createNewStore(ctx context.Context, dbType int, opts Options) *Store {
	addr := opts.Addr
	if addr == "" {
		addr = config.RedisAddr
	}
	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              opts.Password,
		DB:                    dbType,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisIOTimeout,
		WriteTimeout:          config.RedisIOTimeout,
	})
	log := logger.With("addr", addr, "db", strconv.Itoa(dbType))

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisPingTimeout)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis is offline", "error", err)
		_ = newClient.Close()
		return nil
	}

	log.Info("Redis store init successfully")

	newStore := &Store{
		client: newClient,
		Type:   dbType,
	}

	instances[dbType] = newStore
	once.Do(func() {
		go closeRedisStores(ctx)
	})
	return newStore
}

// NewTestStore wraps an existing client, e.g. one pointed at miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
