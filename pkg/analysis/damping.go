package analysis

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/soniclab/transientbvd/pkg/bvd"
	"github.com/soniclab/transientbvd/pkg/util"
)

// OptimumResistance minimizes the decay time over rp ∈ [lo, hi] and returns
// the damping resistance with its τ. τ(rp) is unimodal for realistic
// parameters, so the bounded search converges to the global minimum. An
// optimum within 1% of the range width of either bound logs an advisory hint
// to widen the range; the result is returned regardless.
func OptimumResistance(p bvd.Params, lo, hi float64) (float64, float64, error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	if !(lo > 0) || !(hi > 0) || lo >= hi {
		return 0, 0, fmt.Errorf("%w: [%g, %g]", bvd.ErrInvalidRange, lo, hi)
	}

	rp, tau := util.MinimizeBounded(func(rp float64) float64 {
		t, err := Tau(p.WithRp(rp))
		if err != nil {
			return math.Inf(1) // unstable points lose every comparison
		}
		return t
	}, lo, hi)

	tolerance := 0.01 * (hi - lo)
	switch {
	case rp-lo < tolerance:
		slog.Warn("optimal resistance is near the lower bound of the range, consider reducing the lower bound",
			"rp", rp, "lower", lo)
	case hi-rp < tolerance:
		slog.Warn("optimal resistance is near the upper bound of the range, consider increasing the upper bound",
			"rp", rp, "upper", hi)
	}

	return rp, tau, nil
}

// DampingPotential reports the gain from terminating into the optimal
// damping resistor instead of leaving the circuit open.
type DampingPotential struct {
	Resistance  float64 // optimal rp (ohm)
	Tau         float64 // decay time with rp (s)
	DeltaTime   float64 // absolute improvement over the open circuit (s)
	Improvement float64 // percentage improvement
}

// EvaluateDamping compares the optimal damped decay time against the
// open-circuit closed form 2·Ls/Rs over the given resistance range.
func EvaluateDamping(p bvd.Params, lo, hi float64) (DampingPotential, error) {
	rp, tau, err := OptimumResistance(p, lo, hi)
	if err != nil {
		return DampingPotential{}, err
	}

	tauNoRp := 2 * p.Ls / p.Rs
	delta := tauNoRp - tau
	pct := 0.0
	if tauNoRp > 0 {
		pct = delta / tauNoRp * 100
	}

	return DampingPotential{
		Resistance:  rp,
		Tau:         tau,
		DeltaTime:   delta,
		Improvement: pct,
	}, nil
}
