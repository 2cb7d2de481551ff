package sse

import (
	"errors"
	"sync"

	"github.com/karwey/ssecast/internal/event"
)

// ErrQueueClosed is returned by Push after Close.
var ErrQueueClosed = errors.New("sse: queue closed")

// queue is an unbounded FIFO of events feeding one subscriber. Push
// never blocks, so a stalled consumer backs up its own queue without
// ever stalling the broadcaster. A pump goroutine drains the buffer
// into the output channel the subscriber reads from.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []event.Event
	closed bool

	out  chan event.Event
	done chan struct{}
}

func newQueue() *queue {
	q := &queue{
		out:  make(chan event.Event),
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.pump()
	return q
}

// Push appends e to the queue. It returns ErrQueueClosed if the
// subscriber has already gone away.
func (q *queue) Push(e event.Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.buf = append(q.buf, e)
	q.cond.Signal()
	return nil
}

// Close tears the queue down. Idempotent, safe concurrent with Push;
// events still buffered when the subscriber leaves are discarded.
func (q *queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.done)
	q.cond.Broadcast()
	q.mu.Unlock()
}

// pump moves events from the buffer to the output channel in FIFO
// order. It exits, closing out, once the queue is closed; a send in
// flight is abandoned via done so a reader-less close cannot leak the
// goroutine.
func (q *queue) pump() {
	defer close(q.out)
	for {
		q.mu.Lock()
		for len(q.buf) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			q.mu.Unlock()
			return
		}
		e := q.buf[0]
		q.buf = q.buf[1:]
		q.mu.Unlock()

		select {
		case q.out <- e:
		case <-q.done:
			return
		}
	}
}
