package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotRunning is returned by Submit before Start or after Stop.
	ErrNotRunning = errors.New("worker pool not running")
	// ErrQueueFull is returned when the buffer cannot take another task.
	ErrQueueFull = errors.New("worker pool queue full")
)

// Task is one unit of background work. Tasks sharing a Key are never in flight twice.
type Task struct {
	Key      string
	Kind     string
	Payload  any
	Attempt  int
	Enqueued time.Time
}

// Handler processes a task.
type Handler func(context.Context, Task) error

// Config tunes a Pool.
type Config struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Pool is an in-memory worker pool with bounded retries.
type Pool struct {
	name    string
	handler Handler

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	tasks    chan Task
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	inflight map[string]struct{}
}

// NewPool builds a pool that dispatches tasks to handler.
func NewPool(name string, handler Handler, cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger.With(zap.String("pool", name)),
		tasks:      make(chan Task, cfg.BufferSize),
		inflight:   make(map[string]struct{}),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	p.running = true
	p.logger.Info("worker pool started", zap.Int("workers", p.workers))
}

// Stop cancels the workers and waits for them to return.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	p.mu.Unlock()
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

// Submit queues a task without blocking. A task whose Key is already queued or running
// is accepted and dropped.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return ErrNotRunning
	}
	if task.Key != "" {
		if _, busy := p.inflight[task.Key]; busy {
			return nil
		}
	}
	if task.Enqueued.IsZero() {
		task.Enqueued = time.Now().UTC()
	}
	select {
	case p.tasks <- task:
		if task.Key != "" {
			p.inflight[task.Key] = struct{}{}
		}
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			p.run(task)
		}
	}
}

func (p *Pool) run(task Task) {
	for {
		err := p.handler(p.ctx, task)
		if err == nil {
			p.release(task.Key)
			return
		}
		task.Attempt++
		if task.Attempt > p.maxRetries {
			p.logger.Error("task exceeded retries",
				zap.String("key", task.Key),
				zap.String("kind", task.Kind),
				zap.Int("attempts", task.Attempt),
				zap.Error(err),
			)
			p.release(task.Key)
			return
		}
		p.logger.Warn("task failed, retrying",
			zap.String("key", task.Key),
			zap.String("kind", task.Kind),
			zap.Int("attempt", task.Attempt),
			zap.Error(err),
		)
		timer := time.NewTimer(p.retryDelay)
		select {
		case <-p.ctx.Done():
			timer.Stop()
			p.release(task.Key)
			return
		case <-timer.C:
		}
	}
}

func (p *Pool) release(key string) {
	if key == "" {
		return
	}
	p.mu.Lock()
	delete(p.inflight, key)
	p.mu.Unlock()
}
