package generator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// Parameters are out of their valid domain
	ErrInvalidParams = errors.New("invalid generator parameters")

	// Initial state sits on the singularity of the map (x0 = 0, alpha > 0)
	ErrSingular = errors.New("initial state is singular")
)

// Generator parameters. All of them are fixed for the lifetime of a Generator
type Params struct {
	R      float64 `json:"r"`      // non-linearity, r > 0
	Alpha  float64 `json:"alpha"`  // singularity exponent, alpha >= 0
	Lambda float64 `json:"lambda"` // error feedback gain, lambda > 0
	X0     float64 `json:"x0"`     // initial state in [0,1)
}

// Strongly chaotic regime with amplified error feedback
func DefaultParams() Params {
	return Params{
		R:      3.9999,
		Alpha:  1.0,
		Lambda: 3.0,
		X0:     0.123456789,
	}
}

// Check that parameters describe a well defined trajectory
func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"r", p.R},
		{"alpha", p.Alpha},
		{"lambda", p.Lambda},
		{"x0", p.X0},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s is not finite: %v", ErrInvalidParams, v.name, v.value)
		}
	}
	if p.R <= 0 {
		return fmt.Errorf("%w: r must be positive: %v", ErrInvalidParams, p.R)
	}
	if p.Alpha < 0 {
		return fmt.Errorf("%w: alpha must not be negative: %v", ErrInvalidParams, p.Alpha)
	}
	if p.Lambda <= 0 {
		return fmt.Errorf("%w: lambda must be positive: %v", ErrInvalidParams, p.Lambda)
	}
	if p.X0 < 0 || p.X0 >= 1 {
		return fmt.Errorf("%w: x0 must be in [0,1): %v", ErrInvalidParams, p.X0)
	}
	if p.X0 == 0 && p.Alpha > 0 {
		return fmt.Errorf("%w: x0=0 with alpha=%v", ErrSingular, p.Alpha)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("r=%v alpha=%v lambda=%v x0=%v", p.R, p.Alpha, p.Lambda, p.X0)
}
