package conversation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventqa/internal/domain"
)

// ErrDispatcherClosed is returned by Dispatch after Close.
var ErrDispatcherClosed = errors.New("dispatcher closed")

// Handler processes one inbound message.
type Handler interface {
	Handle(ctx context.Context, in domain.Inbound)
}

type queued struct {
	in       domain.Inbound
	traceID  string
	enqueued time.Time
}

// Dispatcher runs a handler for inbound messages, one goroutine per user with
// pending messages. A user's messages are handled in arrival order; different
// users are handled concurrently. A user's goroutine exits once its queue is empty.
type Dispatcher struct {
	handler Handler
	ctx     context.Context
	logger  *slog.Logger

	mu     sync.Mutex
	queues map[int64][]queued
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher returns a Dispatcher whose handlers run with a context derived
// from ctx that is not canceled when ctx is.
func NewDispatcher(ctx context.Context, handler Handler, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		ctx:     context.WithoutCancel(ctx),
		logger:  logger,
		queues:  make(map[int64][]queued),
	}
}

// Dispatch queues in for its user and returns without waiting for it to be handled.
func (d *Dispatcher) Dispatch(in domain.Inbound) error {
	item := queued{in: in, traceID: uuid.NewString(), enqueued: time.Now()}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	q, running := d.queues[in.UserID]
	d.queues[in.UserID] = append(q, item)
	if !running {
		d.wg.Add(1)
		go d.drain(in.UserID)
	}
	return nil
}

// Pending returns the number of users with queued or in-flight messages.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queues)
}

// Close stops accepting messages and waits for queued ones to be handled.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) drain(userID int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		q := d.queues[userID]
		if len(q) == 0 {
			delete(d.queues, userID)
			d.mu.Unlock()
			return
		}
		item := q[0]
		q[0] = queued{}
		d.queues[userID] = q[1:]
		d.mu.Unlock()

		d.handle(item)
	}
}

func (d *Dispatcher) handle(item queued) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked",
				"trace_id", item.traceID,
				"user_id", item.in.UserID,
				"panic", r,
			)
		}
	}()
	d.logger.Debug("handling message",
		"trace_id", item.traceID,
		"user_id", item.in.UserID,
		"update_id", item.in.UpdateID,
		"queued_ms", time.Since(item.enqueued).Milliseconds(),
	)
	d.handler.Handle(WithTraceID(d.ctx, item.traceID), item.in)
}
