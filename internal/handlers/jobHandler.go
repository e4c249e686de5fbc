package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocChat/internal/chat"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/domain/jobModel"
	"github.com/akolanti/DocChat/internal/job"
	"github.com/akolanti/DocChat/internal/metrics"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           = logger_i.NewLogger("JobHandler")
)

type JobHandler struct {
	service     *job.Service
	chatService chat.Service
}

func InitJobHandler(jobService *job.Service, chatService chat.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, chatService: chatService}
		logJH.Info("Starting job handler")
	})
}

type newJobData struct {
	id        string
	sessionId string
	message   string
	traceId   string
}

func CreateNewJob(newJob newJobData) {
	log := logJH.With("traceId", newJob.traceId, "jobId", newJob.id, "sessionId", newJob.sessionId)
	log.Debug("Creating new job")
	handlerInstance.pushToJobChannel(log, newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func sessionStore() chatModel.SessionStore {
	return handlerInstance.service.SessionStore
}

func chatService() chat.Service {
	return handlerInstance.chatService
}

// private methods
func (h *JobHandler) pushToJobChannel(log *logger_i.Logger, newJob newJobData) {
	_job := jobModel.Job{
		Id:          newJob.id,
		SessionId:   newJob.sessionId,
		TraceId:     newJob.traceId,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.AskInit,
		JobPayload:  jobModel.JobPayload{Question: newJob.message},
	}

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, newJob.traceId)
	if err := h.service.JobStore.SaveJob(ctx, _job); err != nil {
		log.Error("Failed to save queued job", "err", err)
	}

	metrics.IncrementJobsInQueue()

	//blocking send so a full buffer pushes back on callers
	h.service.JobChannel <- _job
	log.Info("Queued ask job")

	//one extra worker every RequestsPerNewWorkerCount asks, idle ones retire
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount()
		log.Debug("Signalling dispatcher", "requestCount", accurateCount)
		select {
		case h.service.DispatcherChannel <- true:
		default:
		}
	}
}
