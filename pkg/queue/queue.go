package queue

import "context"

// Queue represents a basic FIFO queue.
type Queue interface {
	Enqueue(ctx context.Context, item interface{}) error
	Dequeue(ctx context.Context) (interface{}, error)
	TryDequeue() (interface{}, bool)
	Size() int
	ClearQueue()
}
