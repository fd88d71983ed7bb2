package party

import (
	"context"
	"errors"
	"fmt"
	"github.com/asynkron/protoactor-go/actor"
	"minotaur-simulation/impl/eventlogger"
	"minotaur-simulation/impl/parameters"
	"minotaur-simulation/impl/utils"
	"golang.org/x/sync/errgroup"
	"time"
)

var (
	ErrInterrupted   = errors.New("party: wait interrupted")
	ErrGuestsStopped = errors.New("party: workers stopped before confirmation")
)

type Report struct {
	Snapshot
}

// Party admits sampled guests into the labyrinth with a bounded number of
// workers until the leader confirms that everyone has visited.
type Party struct {
	system *actor.ActorSystem
	logger *eventlogger.EventLogger

	guests         []Guest
	sampler        Sampler
	workers        int
	requestTimeout time.Duration
}

func NewParty(
	system *actor.ActorSystem,
	params *parameters.Parameters,
	logger *eventlogger.EventLogger,
) *Party {
	guestCount := params.GuestCount

	var sampler Sampler
	if guestCount > 0 {
		if params.Sampling == parameters.RoundRobinSampling {
			sampler = NewRoundRobinSampler(guestCount)
		} else {
			seed := params.Seed
			if seed == 0 {
				seed = uint64(utils.GetNow())
			}
			sampler = NewRandomSampler(guestCount, seed)
		}
	}

	return NewPartyWithSampler(
		system,
		NewGuests(guestCount, params.Leader()),
		sampler,
		params.Workers,
		params.RequestTimeout(),
		logger,
	)
}

func NewPartyWithSampler(
	system *actor.ActorSystem,
	guests []Guest,
	sampler Sampler,
	workers int,
	requestTimeout time.Duration,
	logger *eventlogger.EventLogger,
) *Party {
	p := new(Party)
	p.system = system
	p.logger = logger
	p.guests = guests
	p.sampler = sampler
	p.workers = workers
	if p.workers <= 0 {
		p.workers = 1
	}
	p.requestTimeout = requestTimeout
	return p
}

// Run blocks until the leader's confirmation, a worker failure, or ctx is
// done. Workers are always joined before Run returns, and a confirmed party
// is never reported as interrupted.
func (p *Party) Run(ctx context.Context) (*Report, error) {
	labyrinth := NewLabyrinth(NewState(len(p.guests)), p.logger)
	pid := p.system.Root.Spawn(
		actor.PropsFromProducer(
			func() actor.Actor {
				return labyrinth
			}),
	)
	defer func() {
		_ = p.system.Root.StopFuture(pid).Wait()
	}()

	stopCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	g, workCtx := errgroup.WithContext(stopCtx)
	if len(p.guests) > 0 {
		for i := 0; i < p.workers; i++ {
			g.Go(func() error {
				return p.admitGuests(workCtx, pid)
			})
		}
	}
	workersDone := make(chan error, 1)
	go func() {
		workersDone <- g.Wait()
	}()

	var workersErr error
	joined := false
	select {
	case <-labyrinth.Confirmed():
	case <-ctx.Done():
	case workersErr = <-workersDone:
		joined = true
	}

	stopWorkers()
	if !joined {
		workersErr = <-workersDone
	}

	var snapshot *Snapshot
	res, inspectErr := p.system.Root.RequestFuture(pid, &Inspect{}, p.requestTimeout).Result()
	if inspectErr == nil {
		snapshot = res.(*Snapshot)
	}

	var runErr error
	switch {
	case isClosed(labyrinth.Confirmed()) || (snapshot != nil && snapshot.Confirmed):
		if workersErr != nil {
			p.logger.Printf("%v\n", workersErr)
		}
	case ctx.Err() != nil:
		runErr = fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		p.logger.OnInterrupted(runErr)
	case workersErr != nil:
		runErr = fmt.Errorf("%w: %w", ErrGuestsStopped, workersErr)
	default:
		runErr = ErrGuestsStopped
	}

	if snapshot == nil {
		return nil, errors.Join(runErr, fmt.Errorf("could not inspect the labyrinth: %w", inspectErr))
	}
	return &Report{Snapshot: *snapshot}, runErr
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func (p *Party) admitGuests(ctx context.Context, labyrinth *actor.PID) error {
	for ctx.Err() == nil {
		guest := p.guests[p.sampler.Next()]
		_, e := p.system.Root.RequestFuture(
			labyrinth, &Visit{Guest: guest}, p.requestTimeout).Result()
		if e != nil {
			return fmt.Errorf("guest %d could not visit the labyrinth: %w", guest.Id(), e)
		}
	}
	return nil
}
