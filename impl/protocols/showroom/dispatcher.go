package showroom

import (
	"context"
	"errors"
	"fmt"
	"minotaur-simulation/impl/eventlogger"
	"sync"
	"sync/atomic"
)

var ErrDispatcherStarted = errors.New("showroom: dispatcher already started")

type DispatcherState int32

const (
	Idle DispatcherState = iota
	Draining
	Dispatching
	Terminated
)

func (s DispatcherState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Draining:
		return "draining"
	case Dispatching:
		return "dispatching"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Dispatcher runs queued tasks one at a time on its own goroutine and stops
// for good once total tasks have been served.
type Dispatcher struct {
	queue  *Queue
	total  int
	logger *eventlogger.EventLogger

	served      int
	servedMutex sync.Mutex

	state   atomic.Int32
	started atomic.Bool
	done    chan struct{}
	err     error
}

func NewDispatcher(queue *Queue, total int, logger *eventlogger.EventLogger) *Dispatcher {
	d := new(Dispatcher)
	d.queue = queue
	d.total = total
	d.logger = logger
	d.done = make(chan struct{})
	d.state.Store(int32(Idle))
	return d
}

// Start launches the dispatch loop. Cancelling ctx stops a dispatcher that
// is waiting for tasks; the running task sees the same ctx.
func (d *Dispatcher) Start(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return ErrDispatcherStarted
	}

	go func() {
		select {
		case <-ctx.Done():
			d.queue.close()
		case <-d.done:
		}
	}()
	go d.dispatchLoop(ctx)
	return nil
}

func (d *Dispatcher) dispatchLoop(ctx context.Context) {
	defer close(d.done)
	defer d.setState(Terminated)

	d.setState(Draining)
	for d.Served() < d.total {
		if ctx.Err() != nil {
			d.interrupt(ctx)
			return
		}

		task, e := d.queue.take()
		if e != nil {
			if ctx.Err() != nil {
				d.interrupt(ctx)
			} else {
				d.err = e
			}
			return
		}

		d.setState(Dispatching)
		if e := task(ctx); e != nil {
			d.logger.OnTaskFailed(e)
		}

		d.servedMutex.Lock()
		d.served++
		served := d.served
		d.servedMutex.Unlock()
		d.logger.OnServed(served, d.total)

		d.setState(Idle)
	}
}

func (d *Dispatcher) interrupt(ctx context.Context) {
	d.err = fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	d.logger.OnInterrupted(d.err)
}

func (d *Dispatcher) setState(state DispatcherState) {
	d.state.Store(int32(state))
	d.logger.OnDispatcherState(state.String())
}

func (d *Dispatcher) State() DispatcherState {
	return DispatcherState(d.state.Load())
}

func (d *Dispatcher) Served() int {
	d.servedMutex.Lock()
	defer d.servedMutex.Unlock()
	return d.served
}

// Done is closed when the dispatcher has terminated.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the dispatcher terminates or ctx is done. A terminated
// dispatcher always wins over ctx. An interrupted wait is reported and
// returned, never retried.
func (d *Dispatcher) Wait(ctx context.Context) (int, error) {
	select {
	case <-d.done:
		return d.Served(), d.err
	default:
	}

	select {
	case <-d.done:
		return d.Served(), d.err
	case <-ctx.Done():
		select {
		case <-d.done:
			return d.Served(), d.err
		default:
		}
		err := fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		d.logger.OnInterrupted(err)
		return d.Served(), err
	}
}
