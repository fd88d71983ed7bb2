package party

// Guest is a party participant. What a guest does in front of an empty plate
// is decided by its variant when it is created, not by its id.
type Guest interface {
	Id() int
	onEmptyPlate(s *State) Outcome
}

type regularGuest struct {
	id int
}

func NewRegularGuest(id int) Guest {
	return &regularGuest{id: id}
}

func (g *regularGuest) Id() int {
	return g.id
}

func (g *regularGuest) onEmptyPlate(*State) Outcome {
	return FoundNothing
}

type leaderGuest struct {
	id int
}

func NewLeaderGuest(id int) Guest {
	return &leaderGuest{id: id}
}

func (g *leaderGuest) Id() int {
	return g.id
}

func (g *leaderGuest) onEmptyPlate(s *State) Outcome {
	s.replenish()
	return Replenished
}

// NewGuests creates guestCount guests where the guest with id leaderId is
// the leader.
func NewGuests(guestCount int, leaderId int) []Guest {
	guests := make([]Guest, guestCount)
	for i := 0; i < guestCount; i++ {
		if i == leaderId {
			guests[i] = NewLeaderGuest(i)
		} else {
			guests[i] = NewRegularGuest(i)
		}
	}
	return guests
}
