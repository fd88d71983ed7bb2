package party

type Outcome int

const (
	Consumed Outcome = iota
	RedundantVisit
	Replenished
	FoundNothing
)

func (o Outcome) String() string {
	switch o {
	case Consumed:
		return "consumed"
	case RedundantVisit:
		return "redundant visit"
	case Replenished:
		return "replenished"
	case FoundNothing:
		return "found nothing"
	}
	return "unknown"
}

// Observation is what a single visit produced. Round is the round count
// right after the visit.
type Observation struct {
	Guest     int
	Outcome   Outcome
	Round     int
	Confirmed bool
}

// State is the party's shared record. It is not safe for concurrent use on
// its own: every visit must go through a single owner, see Labyrinth.
type State struct {
	guestCount     int
	visited        []bool
	cupcakePresent bool
	rounds         int
	confirmed      bool
}

func NewState(guestCount int) *State {
	s := new(State)
	s.guestCount = guestCount
	s.visited = make([]bool, guestCount)
	s.cupcakePresent = true
	s.rounds = 0
	s.confirmed = s.rounds >= guestCount
	return s
}

// Visit applies one guest's visit as a single check-then-act step.
func (s *State) Visit(g Guest) Observation {
	id := g.Id()
	var outcome Outcome

	if s.cupcakePresent {
		if !s.visited[id] {
			s.cupcakePresent = false
			s.visited[id] = true
			outcome = Consumed
		} else {
			outcome = RedundantVisit
		}
	} else {
		outcome = g.onEmptyPlate(s)
	}

	return Observation{
		Guest:     id,
		Outcome:   outcome,
		Round:     s.rounds,
		Confirmed: s.confirmed,
	}
}

// replenish is reachable only through the leader's onEmptyPlate.
func (s *State) replenish() {
	s.cupcakePresent = true
	s.rounds++
	if s.rounds >= s.guestCount {
		s.confirmed = true
	}
}

func (s *State) Rounds() int {
	return s.rounds
}

func (s *State) Confirmed() bool {
	return s.confirmed
}

func (s *State) CupcakePresent() bool {
	return s.cupcakePresent
}

func (s *State) Visited() []bool {
	visited := make([]bool, len(s.visited))
	copy(visited, s.visited)
	return visited
}
