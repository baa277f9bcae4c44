package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/soniclab/transientbvd/internal/consts"
	"github.com/soniclab/transientbvd/pkg/bvd"
	"github.com/soniclab/transientbvd/pkg/eigen"
	"github.com/soniclab/transientbvd/pkg/matrix"
)

// Tau returns the decay time constant of the dominant transient mode.
//
// Open-circuit termination uses the closed form 2·Ls/Rs; no root solve is
// involved. With a finite damping resistor the eigenvalues decide: any root
// with real part above the stability tolerance rejects the configuration as
// unstable, the near-zero charge mode is excluded, and the slowest-decaying
// remaining mode sets τ = 1/(−Re). If only the charge mode is left, nothing
// decays and τ is +Inf.
func Tau(p bvd.Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.OpenCircuit() {
		return 2 * p.Ls / p.Rs, nil
	}

	rts, err := eigen.Roots(p)
	if err != nil {
		return 0, err
	}
	if err := checkStable(rts); err != nil {
		return 0, err
	}

	dominant := math.Inf(-1)
	found := false
	for _, r := range rts {
		if math.Abs(real(r)) <= consts.ZeroModeTol {
			continue
		}
		if real(r) > dominant {
			dominant = real(r)
			found = true
		}
	}
	if !found {
		return math.Inf(1), nil
	}
	return 1 / -dominant, nil
}

// SecondModeTau is the legacy mode selection: τ = 1/|Re| of the second root
// in the fixed (real, imag)-descending ordering. It can disagree with Tau
// near the open-circuit degenerate case, where the near-zero charge mode
// shifts which physical mode sits at index 1. Prefer Tau unless a caller
// depends on the positional choice.
func SecondModeTau(p bvd.Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.OpenCircuit() {
		return 2 * p.Ls / p.Rs, nil
	}

	rts, err := eigen.Roots(p)
	if err != nil {
		return 0, err
	}

	rate := math.Abs(real(rts[1]))
	if rate == 0 {
		return math.Inf(1), nil
	}
	return 1 / rate, nil
}

// TwoTau returns 2·Tau.
func TwoTau(p bvd.Params) (float64, error) {
	tau, err := Tau(p)
	if err != nil {
		return 0, err
	}
	return 2 * tau, nil
}

// InitialConditions fix i(0), i'(0) and i''(0) for the modal reconstruction.
// A nil D2I0 is inferred as −ω_d²·I0 from the oscillatory eigenpair, which
// models switch-off at a current peak; a naive i''(0) = 0 would excite an
// unphysical constant-current solution through the open-circuit zero root.
type InitialConditions struct {
	I0   float64  // i(0) in A
	DI0  float64  // i'(0) in A/s
	D2I0 *float64 // i''(0) in A/s², nil = infer from the oscillatory pair
}

// Current evaluates the transient current i(t) after switch-off at a current
// peak: i(0) = i0, i'(0) = 0, i''(0) inferred.
func Current(t, i0 float64, p bvd.Params) (float64, error) {
	return CurrentIC(t, p, InitialConditions{I0: i0})
}

// CurrentIC reconstructs i(t) = Σ cₖ·exp(λₖ·t) from the eigen-modes. The
// modal coefficients come from the 3×3 system tying them to the initial
// conditions. t = +Inf returns 0 (every stable configuration decays);
// negative t is rejected.
func CurrentIC(t float64, p bvd.Params, ic InitialConditions) (float64, error) {
	if t < 0 || math.IsNaN(t) {
		return 0, fmt.Errorf("%w: t = %g", bvd.ErrInvalidTime, t)
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}

	rts, err := eigen.Roots(p)
	if err != nil {
		return 0, err
	}
	if err := checkStable(rts); err != nil {
		return 0, err
	}

	if math.IsInf(t, 1) {
		return 0, nil
	}

	d2i0 := 0.0
	if ic.D2I0 != nil {
		d2i0 = *ic.D2I0
	} else {
		var omega float64
		for _, r := range rts {
			if w := math.Abs(imag(r)); w > omega {
				omega = w
			}
		}
		d2i0 = -(omega * omega) * ic.I0
	}

	coeffs, err := modalCoefficients(rts, ic.I0, ic.DI0, d2i0)
	if err != nil {
		return 0, err
	}

	var it complex128
	for k, c := range coeffs {
		it += c * cmplx.Exp(rts[k]*complex(t, 0))
	}
	return real(it), nil
}

// modalCoefficients solves the Vandermonde-like system
//
//	[ 1    1    1  ]         [ i0   ]
//	[ λ1   λ2   λ3 ] · c  =  [ di0  ]
//	[ λ1²  λ2²  λ3²]         [ d2i0 ]
func modalCoefficients(rts [3]complex128, i0, di0, d2i0 float64) ([]complex128, error) {
	m, err := matrix.NewModal(3)
	if err != nil {
		return nil, err
	}
	defer m.Destroy()

	for j, lam := range rts {
		m.SetElement(1, j+1, 1)
		m.SetElement(2, j+1, lam)
		m.SetElement(3, j+1, lam*lam)
	}
	m.SetRHS(1, complex(i0, 0))
	m.SetRHS(2, complex(di0, 0))
	m.SetRHS(3, complex(d2i0, 0))

	return m.Solve()
}

func checkStable(rts [3]complex128) error {
	for _, r := range rts {
		if real(r) > consts.StabilityTol {
			return fmt.Errorf("%w: root %v has positive real part", bvd.ErrUnstableSystem, r)
		}
	}
	return nil
}
