// Package host carries what the execution host supplies to each operation:
// the caller identity, the paid amount, the current time and an entropy tick.
package host

import (
	"sync"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/google/uuid"
)

// Invocation is the per-request context resolved by the host adapter
type Invocation struct {
	Caller uuid.UUID
	Paid   domain.Amount
	Now    time.Time
}

// NewInvocation stamps an invocation with the current time
func NewInvocation(caller uuid.UUID, paid domain.Amount) Invocation {
	return Invocation{Caller: caller, Paid: paid, Now: time.Now().UTC()}
}

// Entropy yields ticks used to derive pseudo-random values.
// Implementations are not a cryptographic source.
type Entropy interface {
	NextTick() uint64
}

// ClockEntropy derives ticks from the wall clock in seconds.
// It is a placeholder with no statistical guarantees.
type ClockEntropy struct{}

func (ClockEntropy) NextTick() uint64 {
	return uint64(time.Now().Unix())
}

// SequenceEntropy replays a fixed list of ticks, repeating the last one
// once exhausted. It is meant for tests.
type SequenceEntropy struct {
	mu    sync.Mutex
	ticks []uint64
	pos   int
}

func NewSequenceEntropy(ticks ...uint64) *SequenceEntropy {
	if len(ticks) == 0 {
		ticks = []uint64{0}
	}
	return &SequenceEntropy{ticks: ticks}
}

func (s *SequenceEntropy) NextTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.ticks[s.pos]
	if s.pos < len(s.ticks)-1 {
		s.pos++
	}
	return t
}
