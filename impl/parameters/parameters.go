package parameters

import (
	"errors"
	"fmt"
	"minotaur-simulation/config"
	"time"
)

const (
	RandomSampling     = "random"
	RoundRobinSampling = "round_robin"
)

var ErrInvalidParameters = errors.New("invalid parameters")

type Parameters struct {
	GuestCount int `json:"n"`
	LeaderId   int `json:"leader"`

	// Party harness
	Workers          int    `json:"workers"`
	Sampling         string `json:"sampling"`
	Seed             uint64 `json:"seed"`
	RequestTimeoutNs int    `json:"request_timeout_ns"`
}

func Default() *Parameters {
	return &Parameters{
		GuestCount:       config.GuestCount,
		LeaderId:         config.LeaderId,
		Workers:          config.Workers,
		Sampling:         config.Sampling,
		RequestTimeoutNs: int(config.RequestTimeout),
	}
}

// Validate fills zero-valued harness settings with defaults and rejects
// values no protocol can run with.
func (p *Parameters) Validate() error {
	if p.GuestCount < 0 {
		return fmt.Errorf("%w: guest count %d is negative", ErrInvalidParameters, p.GuestCount)
	}
	if p.Workers <= 0 {
		p.Workers = config.Workers
	}
	if p.RequestTimeoutNs <= 0 {
		p.RequestTimeoutNs = int(config.RequestTimeout)
	}
	switch p.Sampling {
	case "":
		p.Sampling = RandomSampling
	case RandomSampling, RoundRobinSampling:
	default:
		return fmt.Errorf("%w: unknown sampling %q", ErrInvalidParameters, p.Sampling)
	}
	return nil
}

// Leader returns the id of the guest that replenishes the cupcake. An id
// outside of [0, GuestCount) falls back to guest 0.
func (p *Parameters) Leader() int {
	if p.LeaderId < 0 || p.LeaderId >= p.GuestCount {
		return 0
	}
	return p.LeaderId
}

func (p *Parameters) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutNs)
}
