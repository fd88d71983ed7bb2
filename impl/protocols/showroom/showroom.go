package showroom

import (
	"context"
	"errors"
	"fmt"
	"golang.org/x/sync/semaphore"
	"minotaur-simulation/impl/eventlogger"
	"sync/atomic"
)

var ErrInterrupted = errors.New("showroom: wait interrupted")

// Showroom guards the vase with a single permit. Only the permit holder
// may look at the vase, whoever the caller is.
type Showroom struct {
	permit *semaphore.Weighted
	logger *eventlogger.EventLogger

	holders atomic.Int32
	peak    atomic.Int32
}

func NewShowroom(logger *eventlogger.EventLogger) *Showroom {
	s := new(Showroom)
	s.permit = semaphore.NewWeighted(1)
	s.logger = logger
	return s
}

// ViewVase blocks until the permit is free, runs observe and releases the
// permit, also when observe fails or panics.
func (s *Showroom) ViewVase(ctx context.Context, guest int, observe func() error) error {
	if e := s.permit.Acquire(ctx, 1); e != nil {
		err := fmt.Errorf("%w: %w", ErrInterrupted, e)
		s.logger.OnInterrupted(err)
		return err
	}
	defer s.permit.Release(1)

	s.enter()
	defer s.holders.Add(-1)

	if observe != nil {
		if e := observe(); e != nil {
			return fmt.Errorf("guest %d could not view the vase: %w", guest+1, e)
		}
	}
	s.logger.OnVaseViewed(guest)
	return nil
}

func (s *Showroom) enter() {
	holders := s.holders.Add(1)
	for {
		peak := s.peak.Load()
		if holders <= peak || s.peak.CompareAndSwap(peak, holders) {
			return
		}
	}
}

// Peak is the highest number of guests ever seen in the showroom at once.
func (s *Showroom) Peak() int {
	return int(s.peak.Load())
}
