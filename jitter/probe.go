package jitter

const (
	probeLines = 1024
	cacheMask  = 0xFF
	busMask    = 0xFFFF
)

// Hardware jitter probe. Not safe for concurrent use, each generator needs
// its own Probe (multiple probes may share a Cell)
type Probe struct {
	cell *Cell
	line [probeLines]int32
	sink int32
}

// Create a probe observing the contended cell.
// Nil cell means no contention: the probe allocates a private cell
func NewProbe(cell *Cell) *Probe {
	if cell == nil {
		cell = new(Cell)
	}
	return &Probe{cell: cell}
}

// Measure latency of contended and evicted memory reads.
//
// Both returned values are in [0,1)
func (p *Probe) Perturb(round int) (cache, bus float64) {
	var start, end uint64

	start = cycles()
	shared := p.cell.Load()
	end = cycles()
	bus = float64((end-start)&busMask) / (busMask + 1)

	addr := &p.line[round%probeLines]
	start = cycles()
	value := *addr
	end = cycles()
	cache = float64((end-start)&cacheMask) / (cacheMask + 1)
	evict(addr)

	p.sink ^= value ^ int32(shared)
	return cache, bus
}
