package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWorkerPool_StopDrainsQueue(t *testing.T) {
	wp := NewWorkerPool(2, zerolog.Nop())
	if err := wp.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var done atomic.Int32
	for i := 0; i < 15; i++ {
		if err := wp.Submit(func() { done.Add(1) }); err != nil {
			t.Fatalf("unexpected submit error: %v", err)
		}
	}

	if err := wp.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := done.Load(); got != 15 {
		t.Errorf("expected 15 tasks executed, got %d", got)
	}
	if got := wp.Stats().Completed; got != 15 {
		t.Errorf("expected 15 completed, got %d", got)
	}
}

func TestWorkerPool_RecoversFromPanic(t *testing.T) {
	wp := NewWorkerPool(1, zerolog.Nop())
	_ = wp.Start(context.Background())

	var after atomic.Bool
	_ = wp.Submit(func() { panic("bad task") })
	_ = wp.Submit(func() { after.Store(true) })
	_ = wp.Stop()

	if !after.Load() {
		t.Error("expected worker to keep running after panic")
	}
	if got := wp.Stats().Panicked; got != 1 {
		t.Errorf("expected 1 panicked task, got %d", got)
	}
}

func TestWorkerPool_SubmitAfterStop_ReturnsError(t *testing.T) {
	wp := NewWorkerPool(1, zerolog.Nop())
	_ = wp.Start(context.Background())
	_ = wp.Stop()

	if err := wp.Submit(func() {}); !errors.Is(err, ErrPoolStopped) {
		t.Fatalf("expected ErrPoolStopped, got %v", err)
	}
	if err := wp.Stop(); err != nil {
		t.Errorf("expected second stop to be a no-op, got %v", err)
	}
}

func TestWorkerPool_TrySubmit_FullQueueFailsFast(t *testing.T) {
	wp := NewWorkerPool(1, zerolog.Nop())
	capacity := wp.Stats().QueueCapacity

	var done atomic.Int32
	for i := 0; i < capacity; i++ {
		if err := wp.TrySubmit(func() { done.Add(1) }); err != nil {
			t.Fatalf("unexpected error on task %d: %v", i, err)
		}
	}

	start := time.Now()
	if err := wp.TrySubmit(func() { done.Add(1) }); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected immediate rejection, took %s", elapsed)
	}

	_ = wp.Start(context.Background())
	_ = wp.Stop()

	if got := int(done.Load()); got != capacity {
		t.Errorf("expected %d tasks executed, got %d", capacity, got)
	}
	if err := wp.TrySubmit(func() {}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
}
