package party

import (
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"sync"
)

// Sampler picks the next guest to enter the labyrinth. Implementations are
// shared by all workers of a party.
type Sampler interface {
	Next() int
}

// RandomSampler draws guests uniformly with replacement. Every guest
// eventually visits only with probability 1.
type RandomSampler struct {
	guestCount int
	uniform    distuv.Uniform
	mutex      sync.Mutex
}

func NewRandomSampler(guestCount int, seed uint64) *RandomSampler {
	s := new(RandomSampler)
	s.guestCount = guestCount
	s.uniform = distuv.Uniform{
		Min: 0,
		Max: float64(guestCount),
		Src: xrand.NewSource(seed),
	}
	return s
}

func (s *RandomSampler) Next() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := int(s.uniform.Rand())
	if id >= s.guestCount {
		id = s.guestCount - 1
	}
	return id
}

// RoundRobinSampler cycles through guests in id order, which bounds the
// number of visits needed for confirmation.
type RoundRobinSampler struct {
	guestCount int
	next       int
	mutex      sync.Mutex
}

func NewRoundRobinSampler(guestCount int) *RoundRobinSampler {
	s := new(RoundRobinSampler)
	s.guestCount = guestCount
	return s
}

func (s *RoundRobinSampler) Next() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.next
	s.next = (s.next + 1) % s.guestCount
	return id
}
