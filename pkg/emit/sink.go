package emit

import (
	"context"
	"errors"
	"sync"
)

// Sink accepts output units for placement. Implementations decide paths,
// extensions, and overwrite policy; a filesystem sink lives under
// internal/sink.
type Sink interface {
	Write(ctx context.Context, unit Unit) error
}

// MemorySink collects units in memory. It backs dry runs and tests, and is
// safe for concurrent writers.
type MemorySink struct {
	mu    sync.Mutex
	units []Unit
}

var _ Sink = (*MemorySink)(nil)

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write stores a copy of the unit.
func (s *MemorySink) Write(ctx context.Context, unit Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if unit.Name == "" {
		return errors.New("emit: unit name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = append(s.units, unit.Clone())
	return nil
}

// Units returns a copy of everything written so far, in write order.
func (s *MemorySink) Units() []Unit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Unit, 0, len(s.units))
	for _, unit := range s.units {
		out = append(out, unit.Clone())
	}
	return out
}

// Len returns the number of stored units.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.units)
}
