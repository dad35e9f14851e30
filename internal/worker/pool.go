package worker

import (
	"context"
	"sync"
)

// Task is a unit of work. Tasks write their own results; the pool only
// schedules, so per-claim verification can fill disjoint slots of a
// preallocated result slice without locking.
type Task func(ctx context.Context)

// Pool executes tasks with a bounded number of workers
type Pool struct {
	tasks    chan Task
	pending  sync.WaitGroup
	workerWg sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewPool creates a worker pool with the given parallelism
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, workers*2),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for task := range p.tasks {
		task(p.ctx)
		p.pending.Done()
	}
}

// Submit queues a task. Submissions after Shutdown are dropped.
func (p *Pool) Submit(task Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.pending.Add(1)
	p.tasks <- task
}

// Wait blocks until every submitted task has finished
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Shutdown cancels in-flight tasks and releases the workers. Queued tasks
// still run, observing the canceled context.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		p.cancel()
		close(p.tasks)
	}
	p.mu.Unlock()
	p.workerWg.Wait()
}
