package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
)

// ErrSchedulerClosed resolves works added after Close.
var ErrSchedulerClosed = errors.New("scheduler closed")

const queueSize = 64

// Work is a unit of asynchronous work.
type Work func(ctx context.Context) (any, error)

type job struct {
	ctx    context.Context
	cancel context.CancelFunc
	work   Work
	future *models.Future[models.Result[any]]
}

// Scheduler runs works on a fixed pool of workers.
type Scheduler struct {
	mu     sync.Mutex
	closed bool
	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		jobs:   make(chan job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker(i)
	}

	return s
}

// AddWork queues w and returns a future resolved with its result.
// Stopping the future cancels the context passed to w.
func (s *Scheduler) AddWork(w Work) *models.Future[models.Result[any]] {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(s.ctx)
	future := models.NewFuture[models.Result[any]](cancel)

	if s.closed {
		cancel()
		future.Resolve(models.Result[any]{Err: ErrSchedulerClosed})
		return future
	}

	s.jobs <- job{ctx: ctx, cancel: cancel, work: w, future: future}

	return future
}

// Close cancels the running works, resolves the queued ones and waits for
// the workers to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for j := range s.jobs {
		s.run(id, j)
	}
}

func (s *Scheduler) run(id int, j job) {
	defer j.cancel()

	if err := j.ctx.Err(); err != nil {
		j.future.Resolve(models.Result[any]{Err: err})
		return
	}

	defer func() {
		if r := recover(); r != nil {
			zap.S().Named("scheduler").Errorw("work panicked", "worker", id, "panic", r)
			j.future.Resolve(models.Result[any]{Err: fmt.Errorf("work panicked: %v", r)})
		}
	}()

	data, err := j.work(j.ctx)
	j.future.Resolve(models.Result[any]{Data: data, Err: err})
}
