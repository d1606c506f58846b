//go:build !amd64

package jitter

import (
	"time"
)

// No portable cycle counter: fall back to monotonic clock (nanoseconds) and
// skip explicit cache eviction
const HasCycleCounter = false

var epoch = time.Now()

func cycles() uint64 {
	return uint64(time.Since(epoch))
}

func evict(*int32) {}
