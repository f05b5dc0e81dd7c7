package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/rvmoura/pagamentos-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs background jobs on a fixed pool of goroutines. Import batch
// processing happens here so uploads return immediately and clients poll for
// results.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	queue  chan Job
}

// NewWorker creates a worker with numWorkers concurrent processors
func NewWorker(numWorkers int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 100),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is
// full the job runs on the caller's goroutine instead of being dropped.
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("worker queue full, running job synchronously")
		if err := job(w.ctx); err != nil {
			logger.Error("job failed", "error", err)
		}
	}
}

func (w *Worker) process(id int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job := <-w.queue:
			if err := job(w.ctx); err != nil {
				logger.Error("job failed", "worker", id, "error", err)
			}
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after
// the interval, not at startup.
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				if err := job(w.ctx); err != nil {
					logger.Error("scheduled job failed", "error", err)
				}
			}
		}
	}()
}

// Shutdown stops accepting jobs and waits for in-flight ones to finish
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
