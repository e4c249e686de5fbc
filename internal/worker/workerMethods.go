package worker

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/domain/jobModel"
	"github.com/akolanti/DocChat/internal/metrics"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

func executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()
	log := logger.WithTrace(ctx).With("jobId", job.Id, "sessionId", job.SessionId)
	log.Debug("Processing job")

	job = saveJobState(ctx, log, job, jobModel.JobStatusRunning)

	job.CurrentStep = jobModel.SessionLoad
	session, ok := _jobService.SessionStore.GetSession(ctx, job.SessionId)
	if !ok {
		log.Warn("Session vanished before the question ran")
		job = failJob(job, http.StatusNotFound, chatModel.ErrSessionNotFound.Error())
		job = saveJobState(ctx, log, job, jobModel.JobStatusError)
		return
	}

	job.CurrentStep = jobModel.AskCall
	exchange := _chatService.Ask(ctx, session, job.JobPayload.Question)
	session.Pending = false
	session.PendingQuestion = ""

	job.CurrentStep = jobModel.SessionSave
	if err := _jobService.SessionStore.SaveSession(ctx, session); err != nil {
		log.Error("Failed to save session", "err", err)
		code := http.StatusInternalServerError
		if errors.Is(err, chatModel.ErrSessionNotFound) {
			code = http.StatusNotFound
		}
		job = failJob(job, code, err.Error())
		job = saveJobState(ctx, log, job, jobModel.JobStatusError)
		return
	}

	job.JobPayload.Exchange = &exchange
	job.CurrentStep = jobModel.Complete
	job.EndTime = time.Now()
	job = saveJobState(ctx, log, job, jobModel.JobStatusComplete)
}

func failJob(job jobModel.Job, code int, message string) jobModel.Job {
	job.CurrentStep = jobModel.Error
	job.EndTime = time.Now()
	job.Error = jobModel.JobError{Code: code, Message: message}
	return job
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	count := atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", count)
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, log *logger_i.Logger, job jobModel.Job, jobStatus jobModel.JobStatus) jobModel.Job {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to update job status", "err", err)
	}
	return job
}
