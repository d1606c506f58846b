//go:build amd64

package jitter

// Cycle counter is backed by RDTSC, probe lines are evicted with CLFLUSH
const HasCycleCounter = true

// Read time stamp counter
func rdtsc() uint64

// Flush cache line containing addr from all levels of cache hierarchy
//
//go:noescape
func clflush(addr *int32)

func cycles() uint64 {
	return rdtsc()
}

func evict(addr *int32) {
	clflush(addr)
}
