// Pseudo-random generator driven by rounding error of a chaotic map
//
// Each inner iteration evaluates an extended logistic map in double
// precision, squeezes the result through single precision and feeds the lost
// residual back into the state, both directly and via a running accumulator.
// Four iterations are folded into one 32-bit output word.
//
// Without a Perturber the output is a pure function of Params. This is not a
// cryptographically secure generator.
package generator

import (
	"encoding/binary"
)

// Source of small additive terms injected into the chaotic map.
//
// Both values are expected in [0,1), they are scaled down by the generator
// before use. Round is the index of inner iteration within current word
type Perturber interface {
	Perturb(round int) (cache, bus float64)
}

type Option func(*Generator)

// Inject perturbation terms into every inner iteration
func WithPerturber(p Perturber) Option {
	return func(g *Generator) {
		g.perturber = p
	}
}

// Generator state. Not safe for concurrent use
type Generator struct {
	params           Params
	r, alpha, lambda float64

	x   float64 // chaotic state, [0,1)
	acc float64 // accumulated quantization error, [0,1)

	perturber Perturber
	singular  uint64

	// Bytes of the last word not yet consumed by Read()
	pending    [4]byte
	pendingLen int
}

func New(p Params, options ...Option) (*Generator, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		params: p,
		r:      p.R,
		alpha:  p.Alpha,
		lambda: p.Lambda,
		x:      p.X0,
	}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

// Generate next output word
func (g *Generator) Next() uint32 {
	var word uint32
	for i := 0; i < InnerRounds; i++ {
		word ^= g.round(i)
	}
	return word
}

// Fill the slice with consecutive output words
func (g *Generator) Fill(words []uint32) {
	for i := range words {
		words[i] = g.Next()
	}
}

// Read output stream as little-endian bytes.
//
// Leftover bytes of a partially consumed word are returned by the next call
// to Read. Calls to Next() do not see those leftovers. Never fails
func (g *Generator) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if g.pendingLen == 0 {
			binary.LittleEndian.PutUint32(g.pending[:], g.Next())
			g.pendingLen = len(g.pending)
		}
		copied := copy(p[n:], g.pending[len(g.pending)-g.pendingLen:])
		g.pendingLen -= copied
		n += copied
	}
	return n, nil
}

// Current chaotic state and accumulated quantization error
func (g *Generator) State() (x, acc float64) {
	return g.x, g.acc
}

// Parameters the generator was created with
func (g *Generator) Params() Params {
	return g.params
}

// How many inner iterations hit the singularity of the map (or overflowed
// single precision) and had to fall back to accumulated error as the map
// value
func (g *Generator) Singularities() uint64 {
	return g.singular
}
