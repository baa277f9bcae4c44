package bvd

import (
	"fmt"
	"math"

	"github.com/soniclab/transientbvd/pkg/util"
)

// Params holds the Butterworth-Van Dyke equivalent circuit of a transducer:
// a series Rs-Ls-Cs motional branch in parallel with the static capacitance
// C0, optionally loaded by a parallel damping resistor Rp.
//
// Rp = +Inf (or the zero value, meaning unset) is open-circuit termination,
// e.g. an external switch opened. Params is a value object; derive variants
// with WithRp instead of mutating fields in place.
type Params struct {
	Rs float64 // series resistance (ohm)
	Ls float64 // motional inductance (H)
	Cs float64 // motional capacitance (F)
	C0 float64 // static parallel capacitance (F)
	Rp float64 // parallel damping resistance (ohm), +Inf or 0 = open circuit
}

// New returns Params with open-circuit termination.
func New(rs, ls, cs, c0 float64) Params {
	return Params{Rs: rs, Ls: ls, Cs: cs, C0: c0, Rp: math.Inf(1)}
}

// WithRp returns a copy with the parallel damping resistance set.
func (p Params) WithRp(rp float64) Params {
	p.Rp = rp
	return p
}

// OpenCircuit reports whether the termination is open (no damping branch).
func (p Params) OpenCircuit() bool {
	return p.Rp == 0 || math.IsInf(p.Rp, 1)
}

// Validate checks that the four core parameters are finite and positive and
// that Rp, when finite, is positive.
func (p Params) Validate() error {
	for _, v := range [...]struct {
		name  string
		value float64
	}{
		{"rs", p.Rs},
		{"ls", p.Ls},
		{"cs", p.Cs},
		{"c0", p.C0},
	} {
		if !(v.value > 0) || math.IsInf(v.value, 1) {
			return fmt.Errorf("%w: %s = %g", ErrInvalidParameter, v.name, v.value)
		}
	}
	if !p.OpenCircuit() && !(p.Rp > 0) {
		return fmt.Errorf("%w: rp = %g", ErrInvalidParameter, p.Rp)
	}
	return nil
}

// ResonanceFrequency returns the series resonance 1/(2π√(ls·cs)) in hertz.
func ResonanceFrequency(ls, cs float64) (float64, error) {
	if !(ls > 0) || !(cs > 0) {
		return 0, fmt.Errorf("%w: ls = %g, cs = %g", ErrInvalidParameter, ls, cs)
	}
	return 1 / (2 * math.Pi * math.Sqrt(ls*cs)), nil
}

// ResonanceFrequency returns the series resonance of the motional branch.
func (p Params) ResonanceFrequency() (float64, error) {
	return ResonanceFrequency(p.Ls, p.Cs)
}

func (p Params) String() string {
	rp := "open"
	if !p.OpenCircuit() {
		rp = util.FormatValueFactor(p.Rp, "Ohm")
	}
	return fmt.Sprintf("Rs=%s Ls=%s Cs=%s C0=%s Rp=%s",
		util.FormatValueFactor(p.Rs, "Ohm"),
		util.FormatValueFactor(p.Ls, "H"),
		util.FormatValueFactor(p.Cs, "F"),
		util.FormatValueFactor(p.C0, "F"),
		rp)
}
