package jobs

import (
	"context"
	"errors"
	"sync"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

// ErrQueueFull is returned when the job queue is at capacity; callers map it
// to a retry-later response instead of blocking the request.
var ErrQueueFull = errors.New("job queue is full")

type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// WorkerPool consumes a bounded job queue with a fixed number of workers.
// A failing job is logged, never retried and never stops the pool.
type WorkerPool struct {
	jobs chan Job
	wg   sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewWorkerPool(queueDepth int) *WorkerPool {
	if queueDepth <= 0 {
		queueDepth = 64
	}
	return &WorkerPool{jobs: make(chan Job, queueDepth)}
}

func (p *WorkerPool) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 4
	}
	p.startOnce.Do(func() {
		for i := 0; i < workers; i++ {
			p.wg.Add(1)
			go p.run(ctx)
		}
	})
}

func (p *WorkerPool) run(ctx context.Context) {
	defer p.wg.Done()
	for job := range p.jobs {
		log := config.Logger().WithField("job", job.Name)
		if err := job.Run(ctx); err != nil {
			log.WithError(err).Error("Job failed")
			continue
		}
		log.Info("Job finished")
	}
}

// Enqueue adds the job without blocking.
func (p *WorkerPool) Enqueue(job Job) error {
	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to drain.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
