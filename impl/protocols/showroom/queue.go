package showroom

import (
	"context"
	"errors"
	"fmt"
	"github.com/Workiva/go-datastructures/queue"
)

var ErrQueueClosed = errors.New("showroom: queue closed")

// Task is one guest's turn in the showroom.
type Task func(ctx context.Context) error

// Queue is an unbounded FIFO of tasks. Enqueue never blocks; take blocks
// while the queue is empty.
type Queue struct {
	tasks *queue.Queue
}

func NewQueue(sizeHint int) *Queue {
	q := new(Queue)
	q.tasks = queue.New(int64(sizeHint))
	return q
}

func (q *Queue) Enqueue(task Task) error {
	if e := q.tasks.Put(task); e != nil {
		return fmt.Errorf("%w: %w", ErrQueueClosed, e)
	}
	return nil
}

func (q *Queue) Len() int {
	return int(q.tasks.Len())
}

func (q *Queue) take() (Task, error) {
	for {
		items, e := q.tasks.Get(1)
		if e != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueueClosed, e)
		}
		if len(items) > 0 {
			return items[0].(Task), nil
		}
	}
}

// close wakes up a blocked take. Pending tasks are dropped.
func (q *Queue) close() {
	q.tasks.Dispose()
}
