package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/DocChat/internal/domain/chatModel"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	AskInit     InternalStatus = "Init"
	SessionLoad InternalStatus = "SessionLoad"
	AskCall     InternalStatus = "Ask"
	SessionSave InternalStatus = "SessionSave"
	Error       InternalStatus = "Error"

	Complete InternalStatus = "Complete"
)

// Job is one queued question for a session.
type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Question string              `json:"question,omitempty"`
	Exchange *chatModel.Exchange `json:"exchange,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
