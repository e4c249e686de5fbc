package worker

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/DocChat/internal/data/store"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
	"github.com/akolanti/DocChat/internal/domain/jobModel"
	"github.com/akolanti/DocChat/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockChatService answers every question with a fixed string.
type MockChatService struct {
	AskCount int32
	Answer   string
}

func (m *MockChatService) Ask(ctx context.Context, session *chatModel.Session, question string) chatModel.Exchange {
	atomic.AddInt32(&m.AskCount, 1)
	ex := chatModel.Exchange{
		User:      chatModel.NewTurn(chatModel.RoleUser, question),
		Assistant: chatModel.NewTurn(chatModel.RoleAssistant, m.Answer),
	}
	session.Append(ex.User)
	session.Append(ex.Assistant)
	return ex
}

func (m *MockChatService) LoadDocument(ctx context.Context, session *chatModel.Session, name string, r io.Reader) (commonModels.Document, error) {
	return commonModels.Document{}, nil
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestWorkerPool_Flow(t *testing.T) {
	sessions := store.InitSessionStore()
	jobs := store.InitInMemoryJobStore()
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobs,
		SessionStore:      sessions,
	})
	mockChat := &MockChatService{Answer: "Rex."}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	atomic.StoreInt64(&currentWorkerCount, 0)
	InitServices(jobSvc, mockChat)
	InitWorkerPool(stopChan, wg)

	ctx := context.Background()

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true
		waitFor(t, func() bool { return atomic.LoadInt64(&currentWorkerCount) >= 2 })
	})

	t.Run("Worker answers and clears pending", func(t *testing.T) {
		session, err := sessions.CreateSession(ctx)
		require.NoError(t, err)
		require.NoError(t, sessions.BeginAsk(ctx, session.Id, "What is the dog's name?"))

		jobSvc.JobChannel <- jobModel.Job{
			Id:         "job-1",
			SessionId:  session.Id,
			Status:     jobModel.JobStatusQueued,
			JobPayload: jobModel.JobPayload{Question: "What is the dog's name?"},
		}

		waitFor(t, func() bool {
			j, ok := jobs.GetJob(ctx, "job-1")
			return ok && j.Status == jobModel.JobStatusComplete
		})

		j, _ := jobs.GetJob(ctx, "job-1")
		require.NotNil(t, j.JobPayload.Exchange)
		assert.Equal(t, "Rex.", j.JobPayload.Exchange.Assistant.Content)
		assert.Equal(t, jobModel.Complete, j.CurrentStep)

		got, _ := sessions.GetSession(ctx, session.Id)
		assert.False(t, got.Pending)
		assert.Empty(t, got.PendingQuestion)
		assert.Equal(t, 2, got.Len())
		assert.Equal(t, int32(1), atomic.LoadInt32(&mockChat.AskCount))
	})

	t.Run("Missing session fails the job", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "job-2", SessionId: "gone"}

		waitFor(t, func() bool {
			j, ok := jobs.GetJob(ctx, "job-2")
			return ok && j.Status == jobModel.JobStatusError
		})
		j, _ := jobs.GetJob(ctx, "job-2")
		assert.Equal(t, 404, j.Error.Code)
		assert.Equal(t, jobModel.Error, j.CurrentStep)
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 0)
	idleWorkerTimeout = 20 * time.Millisecond
	t.Cleanup(func() {
		atomic.StoreInt64(&minWorkerCount, 1)
	})

	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		JobStore:   &MockJobStore{},
	}
	InitServices(jobSvc, &MockChatService{})

	wg := &sync.WaitGroup{}
	workerWaitGroup = wg
	stopWorkerChannel = make(chan bool)

	createWorker()

	waitFor(t, func() bool { return atomic.LoadInt64(&currentWorkerCount) == 0 })
}
