package printer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job states
const (
	StatusQueued    = "queued"
	StatusPrinting  = "printing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is one queued command stream awaiting transmission.
type Job struct {
	ID          string
	Destination Destination
	Payload     []byte
	Retries     int
	Status      string
	Error       error
	CreatedAt   time.Time
}

// Queue transmits command streams with bounded retries.
type Queue struct {
	jobs       []*Job
	mu         sync.Mutex
	pool       *ConnectionPool
	maxRetries int
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewQueue creates a queue and starts its worker.
func NewQueue(pool *ConnectionPool, maxRetries int, logger *zap.Logger) *Queue {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = zap.NewNop()
	}

	q := &Queue{
		jobs:       make([]*Job, 0),
		pool:       pool,
		maxRetries: maxRetries,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

// Enqueue adds a command stream for transmission and returns the job ID.
func (q *Queue) Enqueue(d Destination, payload []byte) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	job := &Job{
		ID:          fmt.Sprintf("job_%d", time.Now().UnixNano()),
		Destination: d,
		Payload:     payload,
		Status:      StatusQueued,
		CreatedAt:   time.Now(),
	}

	q.jobs = append(q.jobs, job)

	return job.ID
}

func (q *Queue) worker() {
	defer q.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-ticker.C:
			q.processNextJob()
		}
	}
}

func (q *Queue) processNextJob() {
	q.mu.Lock()

	var job *Job
	for _, j := range q.jobs {
		if j.Status == StatusQueued {
			job = j
			job.Status = StatusPrinting
			break
		}
	}

	q.mu.Unlock()

	if job == nil {
		return
	}

	err := q.pool.Print(job.Destination, job.Payload)

	q.mu.Lock()
	defer q.mu.Unlock()

	if err != nil {
		job.Retries++
		job.Error = err

		if job.Retries >= q.maxRetries {
			job.Status = StatusFailed
			q.logger.Warn("print job failed",
				zap.String("job_id", job.ID),
				zap.Int("retries", job.Retries),
				zap.Error(err))
		} else {
			job.Status = StatusQueued
			q.logger.Info("print job retrying",
				zap.String("job_id", job.ID),
				zap.Int("retry", job.Retries),
				zap.Int("max_retries", q.maxRetries),
				zap.Error(err))
		}
	} else {
		job.Status = StatusCompleted
		q.logger.Info("print job completed",
			zap.String("job_id", job.ID),
			zap.Int("bytes", len(job.Payload)))
	}
}

// GetJob returns a copy of the job with the given ID, or nil.
func (q *Queue) GetJob(jobID string) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, job := range q.jobs {
		if job.ID == jobID {
			jobCopy := *job
			return &jobCopy
		}
	}

	return nil
}

// GetAllJobs returns copies of every job.
func (q *Queue) GetAllJobs() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]*Job, len(q.jobs))
	for i, job := range q.jobs {
		jobCopy := *job
		jobs[i] = &jobCopy
	}

	return jobs
}

// ClearCompleted drops completed jobs from the queue.
func (q *Queue) ClearCompleted() {
	q.mu.Lock()
	defer q.mu.Unlock()

	filtered := make([]*Job, 0)
	for _, job := range q.jobs {
		if job.Status != StatusCompleted {
			filtered = append(filtered, job)
		}
	}

	q.jobs = filtered
}

// Stop shuts the worker down.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}
