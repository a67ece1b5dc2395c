package queue

import "context"

// InMemoryQueue implements a channel-backed in-memory queue.
type InMemoryQueue struct {
	ch chan interface{}
}

// NewInMemoryQueue creates a new queue holding at most capacity items.
func NewInMemoryQueue(capacity int) *InMemoryQueue {
	return &InMemoryQueue{
		ch: make(chan interface{}, capacity),
	}
}

// Enqueue adds an item to the end of the queue, blocking while the
// queue is full.
func (q *InMemoryQueue) Enqueue(ctx context.Context, item interface{}) error {
	select {
	case q.ch <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue removes and returns the item from the front of the queue,
// blocking while the queue is empty.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (interface{}, error) {
	select {
	case item := <-q.ch:
		return item, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryDequeue removes and returns the front item without blocking.
func (q *InMemoryQueue) TryDequeue() (interface{}, bool) {
	select {
	case item := <-q.ch:
		return item, true
	default:
		return nil, false
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	return len(q.ch)
}

// ClearQueue clears all messages from the queue.
func (q *InMemoryQueue) ClearQueue() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}
