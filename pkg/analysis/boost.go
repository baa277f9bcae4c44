package analysis

import (
	"fmt"
	"math"

	"github.com/soniclab/transientbvd/internal/consts"
	"github.com/soniclab/transientbvd/pkg/bvd"
)

// Boost configures the two-phase voltage drive: apply the boost amplitude Ub
// until Tsw, then drop to the continuous-wave amplitude. The zero value means
// no boost. Tsw = 0 with Ub set derives the natural switching time. The drive
// has exactly two states, boost phase (t < Tsw) and CW phase (t ≥ Tsw), with
// a single one-way switch between them.
type Boost struct {
	Ub  float64 // boost amplitude (V), 0 = no boost
	Tsw float64 // switching time (s), 0 = derive via SwitchingTime
}

func (b Boost) validate(ucw float64) error {
	if b.Ub == 0 {
		if b.Tsw != 0 {
			return fmt.Errorf("%w: switching time given without a boost voltage", bvd.ErrInvalidBoost)
		}
		return nil
	}
	if b.Ub <= ucw {
		return fmt.Errorf("%w: ub = %g must exceed ucw = %g", bvd.ErrInvalidBoost, b.Ub, ucw)
	}
	if b.Tsw < 0 {
		return fmt.Errorf("%w: negative switching time %g", bvd.ErrInvalidBoost, b.Tsw)
	}
	return nil
}

// resolve fills in a derived switching time for an active boost.
func (b Boost) resolve(rs, ls, ucw float64) (Boost, error) {
	if b.Ub == 0 || b.Tsw != 0 {
		return b, nil
	}
	tsw, err := SwitchingTime(rs, ls, b.Ub, ucw)
	if err != nil {
		return b, err
	}
	b.Tsw = tsw
	return b, nil
}

// SwitchingTime returns the moment the envelope of a ucw-only drive would
// have reached its steady-state current: τ·ln(1/(1 − ucw/ub)) with
// τ = 2·Ls/Rs. This is the natural point to drop from the boost amplitude
// back to the continuous-wave amplitude.
func SwitchingTime(rs, ls, ub, ucw float64) (float64, error) {
	if !(rs > 0) || !(ls > 0) || !(ucw > 0) || !(ub > 0) {
		return 0, fmt.Errorf("%w: rs, ls, ub and ucw must be positive", bvd.ErrInvalidParameter)
	}
	if ub <= ucw {
		return 0, fmt.Errorf("%w: ub = %g must exceed ucw = %g", bvd.ErrInvalidBoost, ub, ucw)
	}

	tau := 2 * ls / rs
	return -tau * math.Log(1-ucw/ub), nil
}

// BoostCurrent evaluates the drive current under the second-order
// dominant-pole approximation (ucw/Rs)·cos(ω_r·t)·(1 − e^(−t/τ)),
// ω_r = 1/√(Ls·Cs), τ = 2·Ls/Rs. With an active boost the amplitude and
// phase reached at Tsw seed the CW-driven continuation, so the current is
// continuous across the switch. t = +Inf returns the steady-state current
// ucw/Rs exactly.
func BoostCurrent(t float64, p bvd.Params, ucw float64, b Boost) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if !(ucw > 0) {
		return 0, fmt.Errorf("%w: ucw = %g", bvd.ErrInvalidParameter, ucw)
	}
	if err := b.validate(ucw); err != nil {
		return 0, err
	}
	if math.IsInf(t, 1) {
		return ucw / p.Rs, nil
	}
	if t < 0 || math.IsNaN(t) {
		return 0, fmt.Errorf("%w: t = %g", bvd.ErrInvalidTime, t)
	}

	b, err := b.resolve(p.Rs, p.Ls, ucw)
	if err != nil {
		return 0, err
	}

	wr := 1 / math.Sqrt(p.Ls*p.Cs)
	tau := 2 * p.Ls / p.Rs

	if b.Ub > 0 {
		if t < b.Tsw {
			return (b.Ub / p.Rs) * math.Cos(wr*t) * (1 - math.Exp(-t/tau)), nil
		}

		// CW phase: the boost envelope decays from its value at Tsw while the
		// CW envelope builds up, both sharing the carried-over phase.
		amp := (b.Ub / p.Rs) * (1 - math.Exp(-b.Tsw/tau))
		phase := wr * b.Tsw
		dt := t - b.Tsw
		return amp*math.Exp(-dt/tau)*math.Cos(wr*dt+phase) +
			(ucw/p.Rs)*math.Cos(wr*dt+phase)*(1-math.Exp(-dt/tau)), nil
	}

	return (ucw / p.Rs) * math.Cos(wr*t) * (1 - math.Exp(-t/tau)), nil
}

// SettlingTime returns the 4τ point: the first time the oscillation envelope
// reaches 98.2% of the steady-state current ucw/Rs. Without boost this is the
// closed form −τ·ln(1 − 0.982). With boost, if the boost envelope alone
// crosses the threshold by Tsw the crossing is solved against that envelope
// (it can land before Tsw); otherwise the post-switch combined exponential is
// solved analytically.
func SettlingTime(p bvd.Params, ucw float64, b Boost) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if !(ucw > 0) {
		return 0, fmt.Errorf("%w: ucw = %g", bvd.ErrInvalidParameter, ucw)
	}
	if err := b.validate(ucw); err != nil {
		return 0, err
	}

	b, err := b.resolve(p.Rs, p.Ls, ucw)
	if err != nil {
		return 0, err
	}

	tau := 2 * p.Ls / p.Rs
	threshold := consts.SettleFraction * ucw / p.Rs

	if b.Ub > 0 {
		ampTsw := (b.Ub / p.Rs) * (1 - math.Exp(-b.Tsw/tau))
		if ampTsw >= threshold {
			return -tau * math.Log(1-threshold*p.Rs/b.Ub), nil
		}
		return tau * math.Log(
			(b.Ub*math.Exp(b.Tsw/tau)-b.Ub-ucw*math.Exp(b.Tsw/tau))/
				(p.Rs*threshold-ucw)), nil
	}

	return -tau * math.Log(1-consts.SettleFraction), nil
}

// BoostPotential reports the settling-time gain from the two-phase drive.
type BoostPotential struct {
	SwitchingTime float64 // t_sw (s)
	SettleNoBoost float64 // 4τ point without boost (s)
	SettleBoost   float64 // 4τ point with boost (s)
	DeltaTime     float64 // absolute improvement (s)
	Improvement   float64 // percentage improvement
}

// EvaluateBoost compares the settling time with and without boosting to ub
// before dropping to ucw at the natural switching time.
func EvaluateBoost(p bvd.Params, ucw, ub float64) (BoostPotential, error) {
	if err := p.Validate(); err != nil {
		return BoostPotential{}, err
	}
	if !(ucw > 0) || !(ub > 0) {
		return BoostPotential{}, fmt.Errorf("%w: ucw = %g, ub = %g", bvd.ErrInvalidParameter, ucw, ub)
	}
	if ub <= ucw {
		return BoostPotential{}, fmt.Errorf("%w: ub = %g must exceed ucw = %g", bvd.ErrInvalidBoost, ub, ucw)
	}

	tsw, err := SwitchingTime(p.Rs, p.Ls, ub, ucw)
	if err != nil {
		return BoostPotential{}, err
	}
	noBoost, err := SettlingTime(p, ucw, Boost{})
	if err != nil {
		return BoostPotential{}, err
	}
	withBoost, err := SettlingTime(p, ucw, Boost{Ub: ub, Tsw: tsw})
	if err != nil {
		return BoostPotential{}, err
	}

	delta := noBoost - withBoost
	pct := 0.0
	if noBoost > 0 {
		pct = delta / noBoost * 100
	}

	return BoostPotential{
		SwitchingTime: tsw,
		SettleNoBoost: noBoost,
		SettleBoost:   withBoost,
		DeltaTime:     delta,
		Improvement:   pct,
	}, nil
}
