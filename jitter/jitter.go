// Timing jitter as a perturbation source for chaotic generator
//
// Probe measures latency of two memory reads with the cycle counter: one of
// a probe line that is evicted from cache after every read, and one of a
// counter that is hammered by a background Contention task from another
// core. Low bits of elapsed cycles become small additive terms for the
// chaotic map.
//
// The whole thing is platform and microarchitecture dependent and is not
// reproducible by design. Use Zero for reproducible output.
package jitter

// Perturbation source that never perturbs anything.
//
// Generator with Zero attached produces the same output as a generator
// without any perturbation source
type Zero struct{}

func (Zero) Perturb(int) (cache, bus float64) {
	return 0, 0
}
