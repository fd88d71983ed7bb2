package showroom

import (
	"context"
	"minotaur-simulation/impl/eventlogger"
	"sync/atomic"
)

type Report struct {
	Order  []int
	Served int
}

// Exhibition lets every guest view the vase exactly once, in the order the
// guests were queued.
type Exhibition struct {
	guestCount int
	logger     *eventlogger.EventLogger

	showroom   *Showroom
	queue      *Queue
	dispatcher *Dispatcher

	order   []int
	started atomic.Bool
}

func NewExhibition(guestCount int, logger *eventlogger.EventLogger) *Exhibition {
	e := new(Exhibition)
	e.guestCount = guestCount
	e.logger = logger
	e.showroom = NewShowroom(logger)
	e.queue = NewQueue(guestCount)
	e.dispatcher = NewDispatcher(e.queue, guestCount, logger)
	return e
}

func (e *Exhibition) guestTask(guest int) Task {
	return func(ctx context.Context) error {
		return e.showroom.ViewVase(ctx, guest, func() error {
			e.order = append(e.order, guest)
			return nil
		})
	}
}

// Run queues all guests before the dispatcher starts and waits for it to
// terminate. An exhibition runs only once.
func (e *Exhibition) Run(ctx context.Context) (*Report, error) {
	if !e.started.CompareAndSwap(false, true) {
		return nil, ErrDispatcherStarted
	}

	for guest := 0; guest < e.guestCount; guest++ {
		if err := e.queue.Enqueue(e.guestTask(guest)); err != nil {
			return nil, err
		}
	}

	if err := e.dispatcher.Start(ctx); err != nil {
		return nil, err
	}

	served, err := e.dispatcher.Wait(ctx)
	if err != nil {
		return &Report{Served: served}, err
	}
	e.logger.OnAllViewed(served)

	order := make([]int, len(e.order))
	copy(order, e.order)
	return &Report{Order: order, Served: served}, nil
}

func (e *Exhibition) Peak() int {
	return e.showroom.Peak()
}
