package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/data/redisStore"
	"github.com/akolanti/DocChat/internal/domain/jobModel"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

const jobKeyPrefix = "job:"

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisJobStore returns nil when Redis is unreachable so the caller can
// fall back to the in-memory store.
func GetRedisJobStore(ctx context.Context, opts redisStore.Options) *RedisJobStore {
	s := redisStore.GetRedisStore(ctx, config.RedisJobStore, opts)
	if s == nil {
		return nil
	}
	return NewRedisJobStore(s)
}

func NewRedisJobStore(s *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  s,
		logger: logger_i.NewLogger("JobStore"),
	}
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	log := s.logger.WithTrace(ctx).With("jobId", job.Id)
	log.Debug("saving job")
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, jobKeyPrefix+job.Id, data, config.RedisJobStoreTTL)
	if err != nil {
		log.Error("Failed to save job to Redis", "error", err)
		return err
	}
	log.Debug("Saved job to Redis")
	return nil
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	var job jobModel.Job
	log := s.logger.WithTrace(ctx).With("jobId", jobId)
	log.Debug("getting job")
	val, err := s.store.Get(ctx, jobKeyPrefix+jobId)
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		log.Error("Failed to read job from Redis", "error", err)
		return job, false
	}

	if err = json.Unmarshal([]byte(val), &job); err != nil {
		log.Error("Failed to unmarshal job", "error", err)
		return job, false
	}
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobID string) {
	if err := s.store.Del(ctx, jobKeyPrefix+jobID); err != nil {
		s.logger.Error("Error deleting job from Redis", "jobId", jobID, "error", err)
		return
	}
	s.logger.Debug("Job deleted from Redis", "jobId", jobID)
}
