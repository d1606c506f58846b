package jitter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sio/pond/chaosrand/logger"
)

// Probe and contention task sharing one Cell for a limited time.
//
// Close() must be called to stop the background task
type Session struct {
	cell      *Cell
	contended bool
	cancel    context.CancelFunc
	group     errgroup.Group
}

// Start contention task and return a session for creating probes.
//
// Failure to start contention is not fatal: session degrades to probing an
// uncontended cell, bus jitter becomes close to constant
func Open(ctx context.Context) *Session {
	log := logger.FromContext(ctx)
	s := &Session{cell: new(Cell)}
	ctx, s.cancel = context.WithCancel(ctx)

	contention, err := NewContention(s.cell)
	if err != nil {
		log.Warn("running without cache contention", "error", err)
		return s
	}
	s.contended = true
	s.group.Go(func() error {
		return contention.Run(ctx)
	})
	log.Debug("cache contention started", "cycle_counter", HasCycleCounter)
	return s
}

// Create new probe observing contended cell of this session
func (s *Session) Probe() *Probe {
	return NewProbe(s.cell)
}

// Whether the background contention task is running
func (s *Session) Contended() bool {
	return s.contended
}

func (s *Session) Cell() *Cell {
	return s.cell
}

// Stop background task and wait for it to exit
func (s *Session) Close() error {
	s.cancel()
	return s.group.Wait()
}
