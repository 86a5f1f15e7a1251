package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrPoolStopped = errors.New("worker pool is stopped")
	ErrQueueFull   = errors.New("worker pool queue is full")
)

type Task func()

type PoolStats struct {
	ActiveWorkers int   `json:"active_workers"`
	MaxWorkers    int   `json:"max_workers"`
	QueueLength   int   `json:"queue_length"`
	QueueCapacity int   `json:"queue_capacity"`
	Completed     int64 `json:"completed"`
	Panicked      int64 `json:"panicked"`
}

// WorkerPool выполняет фоновые задачи вне обработчика запроса. Stop дожидается очереди.
// mu защищает только started/stopped и закрытие канала.
type WorkerPool struct {
	tasks         chan Task
	wg            sync.WaitGroup
	activeWorkers atomic.Int32
	maxWorkers    int
	submitTimeout time.Duration
	logger        zerolog.Logger
	mu            sync.RWMutex
	started       bool
	stopped       bool
	completed     atomic.Int64
	panicked      atomic.Int64
}

func NewWorkerPool(maxWorkers int, logger zerolog.Logger) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &WorkerPool{
		tasks:         make(chan Task, maxWorkers*10),
		maxWorkers:    maxWorkers,
		submitTimeout: time.Second,
		logger:        logger,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.stopped {
		return ErrPoolStopped
	}
	if wp.started {
		return nil
	}
	wp.started = true

	wp.logger.Info().Int("max_workers", wp.maxWorkers).Msg("Starting worker pool")

	for i := 0; i < wp.maxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}

	return nil
}

func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return nil
	}
	wp.stopped = true
	close(wp.tasks)
	wp.mu.Unlock()

	wp.logger.Info().Int("pending", len(wp.tasks)).Msg("Stopping worker pool")

	wp.wg.Wait()

	wp.logger.Info().
		Int64("completed", wp.completed.Load()).
		Msg("Worker pool stopped")
	return nil
}

func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return ErrPoolStopped
	}

	select {
	case wp.tasks <- task:
		return nil
	default:
	}

	wp.logger.Warn().Msg("Worker pool task queue is full")

	timer := time.NewTimer(wp.submitTimeout)
	defer timer.Stop()

	select {
	case wp.tasks <- task:
		return nil
	case <-timer.C:
		wp.logger.Error().Msg("Failed to submit task to worker pool (timeout)")
		return ErrQueueFull
	}
}

// TrySubmit ставит задачу в очередь без ожидания: при полной очереди сразу ErrQueueFull
func (wp *WorkerPool) TrySubmit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return ErrPoolStopped
	}

	select {
	case wp.tasks <- task:
		return nil
	default:
		wp.logger.Warn().Msg("Worker pool task queue is full, task dropped")
		return ErrQueueFull
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	wp.logger.Debug().Int("worker_id", id).Msg("Worker started")

	for task := range wp.tasks {
		wp.run(id, task)
	}

	wp.logger.Debug().Int("worker_id", id).Msg("Worker stopped")
}

func (wp *WorkerPool) run(id int, task Task) {
	wp.activeWorkers.Add(1)

	defer func() {
		if r := recover(); r != nil {
			wp.panicked.Add(1)
			wp.logger.Error().
				Int("worker_id", id).
				Interface("panic", r).
				Msg("Worker recovered from panic")
		} else {
			wp.completed.Add(1)
		}

		wp.activeWorkers.Add(-1)
	}()

	task()
}

func (wp *WorkerPool) Stats() PoolStats {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	return PoolStats{
		ActiveWorkers: int(wp.activeWorkers.Load()),
		MaxWorkers:    wp.maxWorkers,
		QueueLength:   len(wp.tasks),
		QueueCapacity: cap(wp.tasks),
		Completed:     wp.completed.Load(),
		Panicked:      wp.panicked.Load(),
	}
}
