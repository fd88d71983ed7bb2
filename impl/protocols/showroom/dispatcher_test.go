package showroom

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log"
	"minotaur-simulation/impl/eventlogger"
	"strings"
	"sync"
	"testing"
	"time"
)

const timeout = 5 * time.Second

func waitDone(t *testing.T, d *Dispatcher) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	served, e := d.Wait(ctx)
	require.NoError(t, e)
	return served
}

func TestDispatcher_threeTasksInOrder(t *testing.T) {
	q := NewQueue(3)
	d := NewDispatcher(q, 3, discardLogger())

	var order []int
	var servedBefore []int
	for i := 0; i < 3; i++ {
		id := i
		require.NoError(t, q.Enqueue(func(context.Context) error {
			order = append(order, id)
			servedBefore = append(servedBefore, d.Served())
			return nil
		}))
	}
	require.NoError(t, d.Start(context.Background()))

	assert.Equal(t, 3, waitDone(t, d))
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, []int{0, 1, 2}, servedBefore)
	assert.Equal(t, Terminated, d.State())
}

func TestDispatcher_taskFinishesBeforeNextStarts(t *testing.T) {
	const total = 20
	q := NewQueue(total)
	d := NewDispatcher(q, total, discardLogger())

	mutex := &sync.Mutex{}
	var events []string
	record := func(event string) {
		mutex.Lock()
		defer mutex.Unlock()
		events = append(events, event)
	}
	for i := 0; i < total; i++ {
		require.NoError(t, q.Enqueue(func(context.Context) error {
			record("start")
			time.Sleep(time.Millisecond)
			record("end")
			return nil
		}))
	}
	require.NoError(t, d.Start(context.Background()))
	waitDone(t, d)

	require.Len(t, events, 2*total)
	for i := 0; i < total; i++ {
		assert.Equal(t, "start", events[2*i])
		assert.Equal(t, "end", events[2*i+1])
	}
}

func TestDispatcher_tasksEnqueuedAfterStart(t *testing.T) {
	q := NewQueue(0)
	d := NewDispatcher(q, 2, discardLogger())
	require.NoError(t, d.Start(context.Background()))

	var order []int
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, Draining, d.State())

	require.NoError(t, q.Enqueue(markTask(0, &order)))
	require.NoError(t, q.Enqueue(markTask(1, &order)))

	assert.Equal(t, 2, waitDone(t, d))
	assert.Equal(t, []int{0, 1}, order)
}

func TestDispatcher_failedTaskStillServed(t *testing.T) {
	q := NewQueue(2)
	d := NewDispatcher(q, 2, discardLogger())

	require.NoError(t, q.Enqueue(func(context.Context) error {
		return errors.New("guest left")
	}))
	var order []int
	require.NoError(t, q.Enqueue(markTask(1, &order)))
	require.NoError(t, d.Start(context.Background()))

	assert.Equal(t, 2, waitDone(t, d))
	assert.Equal(t, []int{1}, order)
}

func TestDispatcher_noGuestsTerminatesImmediately(t *testing.T) {
	d := NewDispatcher(NewQueue(0), 0, discardLogger())
	assert.Equal(t, Idle, d.State())

	require.NoError(t, d.Start(context.Background()))

	assert.Equal(t, 0, waitDone(t, d))
	assert.Equal(t, Terminated, d.State())
}

func TestDispatcher_startTwice(t *testing.T) {
	d := NewDispatcher(NewQueue(0), 0, discardLogger())

	require.NoError(t, d.Start(context.Background()))

	assert.ErrorIs(t, d.Start(context.Background()), ErrDispatcherStarted)
}

func TestDispatcher_cancelledWhileWaitingForTasks(t *testing.T) {
	d := NewDispatcher(NewQueue(0), 3, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Start(ctx))

	cancel()

	select {
	case <-d.Done():
	case <-time.After(timeout):
		t.Fatal("dispatcher did not terminate")
	}
	served, e := d.Wait(context.Background())
	assert.Equal(t, 0, served)
	assert.ErrorIs(t, e, ErrInterrupted)
	assert.ErrorIs(t, e, context.Canceled)
	assert.Equal(t, Terminated, d.State())
}

func TestDispatcher_waitInterrupted(t *testing.T) {
	d := NewDispatcher(NewQueue(0), 1, discardLogger())
	require.NoError(t, d.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, e := d.Wait(ctx)

	assert.ErrorIs(t, e, ErrInterrupted)
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}

func TestDispatcher_servedNeverDecreases(t *testing.T) {
	const total = 50
	q := NewQueue(total)
	d := NewDispatcher(q, total, discardLogger())
	for i := 0; i < total; i++ {
		require.NoError(t, q.Enqueue(func(context.Context) error {
			time.Sleep(100 * time.Microsecond)
			return nil
		}))
	}
	require.NoError(t, d.Start(context.Background()))

	previous := 0
	for {
		select {
		case <-d.Done():
			assert.Equal(t, total, d.Served())
			return
		default:
		}
		served := d.Served()
		assert.GreaterOrEqual(t, served, previous)
		previous = served
	}
}

func TestDispatcher_terminatedWinsOverCancelledWait(t *testing.T) {
	d := NewDispatcher(NewQueue(0), 0, discardLogger())
	require.NoError(t, d.Start(context.Background()))
	<-d.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 100; i++ {
		served, e := d.Wait(ctx)

		require.NoError(t, e)
		assert.Equal(t, 0, served)
	}
}

func TestDispatcher_cancelledBeforeStartRunsNoTask(t *testing.T) {
	q := NewQueue(3)
	d := NewDispatcher(q, 3, discardLogger())
	var order []int
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(markTask(i, &order)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Start(ctx))
	<-d.Done()

	served, e := d.Wait(context.Background())
	assert.ErrorIs(t, e, ErrInterrupted)
	assert.Equal(t, 0, served)
	assert.Empty(t, order)
}

func TestDispatcher_stateTransitionsPerTask(t *testing.T) {
	buf := &bytes.Buffer{}
	q := NewQueue(2)
	d := NewDispatcher(q, 2, eventlogger.InitEventLogger("test", log.New(buf, "", 0)))

	var inside []DispatcherState
	for i := 0; i < 2; i++ {
		require.NoError(t, q.Enqueue(func(context.Context) error {
			inside = append(inside, d.State())
			return nil
		}))
	}
	require.NoError(t, d.Start(context.Background()))
	waitDone(t, d)

	var states []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if _, state, found := strings.Cut(line, "dispatcher is "); found {
			states = append(states, state)
		}
	}
	assert.Equal(t, []DispatcherState{Dispatching, Dispatching}, inside)
	assert.Equal(t,
		[]string{"draining", "dispatching", "idle", "dispatching", "idle", "terminated"},
		states)
}
