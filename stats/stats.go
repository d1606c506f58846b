// Quick statistical sanity checks for random samples
//
// These are smoke tests meant to catch gross failures (stuck bits, constant
// output, NaN poisoning) before feeding a stream into a real test suite.
// Passing them means very little.
package stats

import (
	"fmt"
	"math"
	"math/bits"
)

// Samples deviating further than this many standard deviations are
// reported as suspicious
const Sigmas = 5

type Report struct {
	Bytes int

	Ones     float64 // fraction of one bits
	MonobitZ float64

	ChiSquare float64 // byte histogram, 255 degrees of freedom
	ChiZ      float64

	Runs  int // runs of identical bits
	RunsZ float64

	Mean float64 // mean byte value, 127.5 expected
}

// Compute statistics for a sample. Sample should be at least a few
// kilobytes long for the numbers to be meaningful
func Analyze(sample []byte) Report {
	r := Report{Bytes: len(sample)}
	if len(sample) == 0 {
		return r
	}

	var (
		ones      int
		sum       int
		histogram [256]int
		prev      = sample[0] & 1
	)
	r.Runs = 1
	for _, b := range sample {
		ones += bits.OnesCount8(b)
		sum += int(b)
		histogram[b]++

		// Bit transitions within the byte and from the previous one (LSB first)
		shifted := b<<1 | prev
		r.Runs += bits.OnesCount8(b ^ shifted)
		prev = b >> 7
	}
	n := float64(8 * len(sample))

	r.Ones = float64(ones) / n
	r.MonobitZ = (float64(ones) - n/2) / math.Sqrt(n/4)

	expected := float64(len(sample)) / 256
	for _, count := range histogram {
		d := float64(count) - expected
		r.ChiSquare += d * d / expected
	}
	const dof = 255
	r.ChiZ = (r.ChiSquare - dof) / math.Sqrt(2*dof)

	pi := r.Ones
	spread := 2 * math.Sqrt(2*n) * pi * (1 - pi)
	if spread > 0 {
		r.RunsZ = (float64(r.Runs) - 2*n*pi*(1-pi)) / spread
	} else {
		r.RunsZ = math.Inf(1)
	}

	r.Mean = float64(sum) / float64(len(sample))
	return r
}

// Human readable descriptions of failed checks
func (r Report) Failures() []string {
	var failed []string
	for _, check := range []struct {
		name string
		z    float64
	}{
		{"monobit", r.MonobitZ},
		{"byte chi-square", r.ChiZ},
		{"runs", r.RunsZ},
	} {
		if math.IsNaN(check.z) || math.Abs(check.z) > Sigmas {
			failed = append(failed, fmt.Sprintf("%s: z=%.2f", check.name, check.z))
		}
	}
	return failed
}

func (r Report) String() string {
	return fmt.Sprintf(
		"bytes=%d ones=%.6f (z=%.2f) chi2=%.1f (z=%.2f) runs=%d (z=%.2f) mean=%.3f",
		r.Bytes,
		r.Ones, r.MonobitZ,
		r.ChiSquare, r.ChiZ,
		r.Runs, r.RunsZ,
		r.Mean,
	)
}
