package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocChat/internal/chat"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/job"
	"github.com/akolanti/DocChat/internal/metrics"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

var (
	_jobService        *job.Service
	_chatService       chat.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             = logger_i.NewLogger("WorkerPool")
	minWorkerCount     = config.MinWorkerCount
	idleWorkerTimeout  = config.IdleWorkerTimeout
)

func InitServices(jobService *job.Service, chatService chat.Service) {
	_jobService = jobService
	_chatService = chatService
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger.Info("Initializing worker pool")
	go dispatcher()
}

// dispatcher keeps one worker alive and adds more, up to MaxWorkerCount,
// each time the handlers signal that the queue is growing.
func dispatcher() {
	createWorker()
	logger.Info("Dispatcher started")
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
			logger.Info("Creating new worker", "workerCount", atomic.LoadInt64(&currentWorkerCount))
			createWorker()
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	go worker()
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	logger.Debug("Created new worker")
}

func worker() {
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			executeJob(currentJob)
			metrics.DecrementJobsInQueue()

		case <-stopWorkerChannel:
			removeWorker("Stop worker signal received")
			return

		case <-time.After(idleWorkerTimeout):
			if atomic.LoadInt64(&currentWorkerCount) > atomic.LoadInt64(&minWorkerCount) {
				removeWorker("Idle worker timeout")
				return
			}
		}
	}
}
