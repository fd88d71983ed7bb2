package party

import (
	"github.com/asynkron/protoactor-go/actor"
	"minotaur-simulation/impl/eventlogger"
)

type Visit struct {
	Guest Guest
}

type Inspect struct{}

type Snapshot struct {
	Visited        []bool
	CupcakePresent bool
	Rounds         int
	Confirmed      bool
	Visits         int
	Outcomes       map[Outcome]int
}

// Labyrinth owns the party State. Visits arrive through the actor's mailbox
// and are applied one at a time, so the state needs no lock of its own.
type Labyrinth struct {
	state  *State
	logger *eventlogger.EventLogger

	visits   int
	outcomes map[Outcome]int

	confirmed chan struct{}
	signalled bool
}

func NewLabyrinth(state *State, logger *eventlogger.EventLogger) *Labyrinth {
	l := new(Labyrinth)
	l.state = state
	l.logger = logger
	l.outcomes = make(map[Outcome]int)
	l.confirmed = make(chan struct{})
	if state.Confirmed() {
		l.signal()
	}
	return l
}

// Confirmed is closed once the leader has counted every guest.
func (l *Labyrinth) Confirmed() <-chan struct{} {
	return l.confirmed
}

func (l *Labyrinth) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *Visit:
		observation := l.state.Visit(msg.Guest)
		l.visits++
		l.outcomes[observation.Outcome]++
		l.logObservation(observation)
		if observation.Confirmed && !l.signalled {
			l.signal()
		}
		context.Respond(&observation)
	case *Inspect:
		context.Respond(l.snapshot())
	}
}

func (l *Labyrinth) signal() {
	l.signalled = true
	l.logger.OnConfirmed(l.state.Rounds(), l.visits)
	close(l.confirmed)
}

func (l *Labyrinth) logObservation(o Observation) {
	switch o.Outcome {
	case Consumed:
		l.logger.OnConsumed(o.Guest)
	case RedundantVisit:
		l.logger.OnRedundantVisit(o.Guest)
	case Replenished:
		l.logger.OnReplenished(o.Guest, o.Round)
	case FoundNothing:
		l.logger.OnFoundNothing(o.Guest)
	}
}

func (l *Labyrinth) snapshot() *Snapshot {
	outcomes := make(map[Outcome]int, len(l.outcomes))
	for outcome, count := range l.outcomes {
		outcomes[outcome] = count
	}
	return &Snapshot{
		Visited:        l.state.Visited(),
		CupcakePresent: l.state.CupcakePresent(),
		Rounds:         l.state.Rounds(),
		Confirmed:      l.state.Confirmed(),
		Visits:         l.visits,
		Outcomes:       outcomes,
	}
}
