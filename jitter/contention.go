package jitter

import (
	"context"
	"errors"
	"runtime"
)

// Contention needs a CPU of its own, otherwise it only steals time from the
// generator without creating any cross-core cache traffic
var ErrNoSpareCPU = errors.New("contention requires at least two CPUs")

// Increments between checks for cancellation
const contentionBatch = 4096

// Background task keeping the cache line of a Cell busy
type Contention struct {
	cell *Cell
}

func NewContention(cell *Cell) (*Contention, error) {
	if cell == nil {
		return nil, errors.New("contention: nil cell")
	}
	if runtime.GOMAXPROCS(0) < 2 {
		return nil, ErrNoSpareCPU
	}
	return &Contention{cell: cell}, nil
}

// Increment the counter in a tight loop until context is cancelled.
//
// There is no synchronization with readers of the cell besides atomicity of
// individual operations: the race is the point
func (c *Contention) Run(ctx context.Context) error {
	done := ctx.Done()
	for {
		for i := 0; i < contentionBatch; i++ {
			c.cell.Add()
		}
		select {
		case <-done:
			return nil
		default:
		}
	}
}
