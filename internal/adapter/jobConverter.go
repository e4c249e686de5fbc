package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/DocChat/internal/api"
	"github.com/akolanti/DocChat/internal/domain/jobModel"
)

func ToInitJobResponse(id string, sessionId string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		SessionId: sessionId,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:         string(job.Status),
		Step:           string(job.CurrentStep),
		AnswerResponse: ToAnswerResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		SessionId: job.SessionId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

// ToAnswerResponse is nil until the worker has stored the exchange.
func ToAnswerResponse(payload jobModel.JobPayload) *api.AnswerResponse {
	if payload.Exchange == nil {
		return nil
	}
	return &api.AnswerResponse{
		Question: payload.Exchange.User.Content,
		Answer:   payload.Exchange.Assistant.Content,
		Notice:   payload.Exchange.Notice,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
