package jitter

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Shared counter occupying a cache line of its own.
//
// Exact value is meaningless, only memory traffic caused by concurrent
// increments matters
type Cell struct {
	_ cpu.CacheLinePad
	n atomic.Uint64
	_ cpu.CacheLinePad
}

func (c *Cell) Add() {
	c.n.Add(1)
}

func (c *Cell) Load() uint64 {
	return c.n.Load()
}
