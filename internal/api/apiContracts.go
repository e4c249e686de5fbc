package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	SessionId string            `json:"session_id" example:"3f0c5a0e-8d1e-4c3b-9d55-6a4f1f0f2b11"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"session not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// AnswerResponse is the exchange produced by one ask. Notice is set only when
// generation failed and the answer is the apology message.
type AnswerResponse struct {
	Question string `json:"question" example:"What is the dog's name?"`
	Answer   string `json:"answer" example:"The dog's name is Rex."`
	Notice   string `json:"notice,omitempty" example:"gemini: generation failed: context deadline exceeded"`
}

type Result struct {
	Status         string          `json:"status" example:"COMPLETE"`
	Step           string          `json:"step,omitempty" example:"Complete"`
	AnswerResponse *AnswerResponse `json:"answer,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	SessionId string `json:"session_id"`
	StatusURL string `json:"status_url"`
}

type CreateSessionResponse struct {
	SessionId string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TurnResponse struct {
	Role      string    `json:"role" example:"user"`
	Content   string    `json:"content" example:"What is the dog's name?"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Name     string    `json:"name" example:"notes.txt"`
	Type     string    `json:"type" example:"TXT"`
	Size     int       `json:"size" example:"1024"`
	LoadedAt time.Time `json:"loaded_at"`
	Preview  string    `json:"preview"`
}

type SessionResponse struct {
	SessionId       string            `json:"session_id"`
	CreatedAt       time.Time         `json:"created_at"`
	Pending         bool              `json:"pending"`
	PendingQuestion string            `json:"pending_question,omitempty"`
	Document        *DocumentResponse `json:"document,omitempty"`
	Transcript      []TurnResponse    `json:"transcript"`
}

// requests---------------------

type AskRequest struct {
	Message string `json:"message" validate:"required,notblank" example:"What is the dog's name?"`
}
