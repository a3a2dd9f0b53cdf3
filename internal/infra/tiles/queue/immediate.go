package queue

import (
	"context"
	"sync"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

// Handler processes one dequeued job.
type Handler func(ctx context.Context, name string, payload map[string]any)

// HandlerQueue is a job queue whose consumer is attached after construction.
type HandlerQueue interface {
	tiles.JobQueue
	SetHandler(handler Handler)
	Close()
}

// ImmediateQueue runs each job in its own goroutine as soon as it is enqueued.
type ImmediateQueue struct {
	mu      sync.RWMutex
	handler Handler
	wg      sync.WaitGroup
}

// NewImmediateQueue constructs the queue.
func NewImmediateQueue(handler Handler) *ImmediateQueue {
	return &ImmediateQueue{handler: handler}
}

// SetHandler replaces the handler used for queued jobs.
func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.mu.Lock()
	q.handler = handler
	q.mu.Unlock()
}

// Enqueue invokes the handler asynchronously. The job outlives the caller's
// request, so it runs on a context detached from ctx's cancellation.
func (q *ImmediateQueue) Enqueue(ctx context.Context, name string, payload any) error {
	typed, ok := payload.(map[string]any)
	if !ok {
		typed = map[string]any{}
	}
	q.mu.RLock()
	handler := q.handler
	q.mu.RUnlock()
	if handler == nil {
		return nil
	}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		handler(context.WithoutCancel(ctx), name, typed)
	}()
	return nil
}

// Wait blocks until every job started so far has returned.
func (q *ImmediateQueue) Wait() {
	q.wg.Wait()
}

// Close waits for in-flight jobs.
func (q *ImmediateQueue) Close() {
	q.Wait()
}

var _ HandlerQueue = (*ImmediateQueue)(nil)
