package generator

import (
	"math"
)

// Number of chaotic map iterations folded into each output word
const InnerRounds = 4

const (
	cacheJitterScale = 1e-7
	busJitterScale   = 1e-5
	accumulatedGain  = 0.3
)

// Extended logistic map with a tunable singularity at x=0:
//
//	f(x) = r * x * (1-x) * x^(-alpha)
func evaluate(r, alpha, x float64) float64 {
	return r * x * (1 - x) * math.Pow(x, -alpha)
}

// Round trip through float32 and return the quantized value together with
// the rounding residual lost on the way
func quantize(f float64) (quant, residual float64) {
	quant = float64(float32(f))
	return quant, f - quant
}

// Fractional part in [0,1).
//
// v - floor(v) rounds up to exactly 1.0 for tiny negative v, such results
// wrap to 0
func frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// Value survives quantization without turning into infinity or NaN
func quantizable(f float64) bool {
	return math.Abs(f) <= math.MaxFloat32
}

// 32 bit window of binary64 representation, starting 12 bits above the
// least significant bit
func mantissaBits(x float64) uint32 {
	return uint32(math.Float64bits(x) >> 12)
}

// Low 32 bits of binary64 representation
func residualBits(e float64) uint32 {
	return uint32(math.Float64bits(e))
}

// Single inner iteration. Mutates generator state and returns 32 bits to be
// folded into the output word.
//
// Explicit float64() conversions around products prevent fusing them into
// FMA instructions on architectures that have those, output must not depend
// on GOARCH
func (g *Generator) round(n int) uint32 {
	f := evaluate(g.r, g.alpha, g.x)
	if g.perturber != nil {
		cache, bus := g.perturber.Perturb(n)
		f += float64(cache * cacheJitterScale)
		f += float64(bus * busJitterScale)
	}
	if !quantizable(f) {
		g.singular++
		f = g.acc
	}

	quant, residual := quantize(f)
	g.acc = frac(g.acc + residual)

	y := frac(quant)
	g.x = frac(y + float64(g.lambda*residual) + float64(float64(g.lambda*accumulatedGain)*g.acc))

	return mantissaBits(g.x) ^ residualBits(residual)
}
