package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniclab/transientbvd/pkg/bvd"
)

func TestSwitchingTime(t *testing.T) {
	p := bench40H()

	tsw, err := SwitchingTime(p.Rs, p.Ls, 60, 40)
	require.NoError(t, err)

	tau := 2 * p.Ls / p.Rs
	assert.InDelta(t, -tau*math.Log(1-40.0/60.0), tsw, 1e-12)
	assert.Greater(t, tsw, 0.0)
}

func TestSwitchingTimeRequiresUbAboveUcw(t *testing.T) {
	p := bench40H()

	_, err := SwitchingTime(p.Rs, p.Ls, 30, 40)
	assert.ErrorIs(t, err, bvd.ErrInvalidBoost)

	_, err = SwitchingTime(p.Rs, p.Ls, 40, 40)
	assert.ErrorIs(t, err, bvd.ErrInvalidBoost)

	_, err = SwitchingTime(0, p.Ls, 60, 40)
	assert.ErrorIs(t, err, bvd.ErrInvalidParameter)
}

func TestBoostCurrentStartsAtZero(t *testing.T) {
	i, err := BoostCurrent(0, bench40H(), 40, Boost{Ub: 60})
	require.NoError(t, err)
	assert.Zero(t, i)
}

func TestBoostCurrentSteadyState(t *testing.T) {
	p := bench40H()

	i, err := BoostCurrent(math.Inf(1), p, 40, Boost{Ub: 60})
	require.NoError(t, err)
	assert.InDelta(t, 40/p.Rs, i, 1e-15)

	i, err = BoostCurrent(math.Inf(1), p, 40, Boost{})
	require.NoError(t, err)
	assert.InDelta(t, 40/p.Rs, i, 1e-15)
}

func TestBoostCurrentContinuousAtSwitch(t *testing.T) {
	p := bench40H()

	tsw, err := SwitchingTime(p.Rs, p.Ls, 60, 40)
	require.NoError(t, err)

	b := Boost{Ub: 60, Tsw: tsw}
	before, err := BoostCurrent(tsw*(1-1e-9), p, 40, b)
	require.NoError(t, err)
	after, err := BoostCurrent(tsw, p, 40, b)
	require.NoError(t, err)

	assert.InDelta(t, before, after, 1e-4)
}

func TestBoostCurrentEnvelopeBounded(t *testing.T) {
	p := bench40H()
	b := Boost{Ub: 60}

	for _, tt := range []float64{1e-5, 1e-4, 1e-3, 5e-3, 2e-2} {
		i, err := BoostCurrent(tt, p, 40, b)
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(i), 60/p.Rs*(1+1e-9), "t = %g", tt)
	}
}

func TestBoostCurrentRejectsBadInput(t *testing.T) {
	p := bench40H()

	_, err := BoostCurrent(1e-3, p, 40, Boost{Tsw: 1e-3})
	assert.ErrorIs(t, err, bvd.ErrInvalidBoost)

	_, err = BoostCurrent(1e-3, p, 40, Boost{Ub: 30})
	assert.ErrorIs(t, err, bvd.ErrInvalidBoost)

	_, err = BoostCurrent(-1e-3, p, 40, Boost{})
	assert.ErrorIs(t, err, bvd.ErrInvalidTime)

	_, err = BoostCurrent(1e-3, p, 0, Boost{})
	assert.ErrorIs(t, err, bvd.ErrInvalidParameter)
}

func TestSettlingTimeNoBoost(t *testing.T) {
	p := bench40H()

	settle, err := SettlingTime(p, 40, Boost{})
	require.NoError(t, err)

	tau := 2 * p.Ls / p.Rs
	assert.InDelta(t, -tau*math.Log(1-0.982), settle, 1e-12)
}

func TestSettlingTimeWithBoost(t *testing.T) {
	p := bench40H()
	tau := 2 * p.Ls / p.Rs

	// At the natural switching time the envelope has already reached the
	// full ucw/Rs amplitude, so the crossing is solved against the boost
	// envelope alone.
	settle, err := SettlingTime(p, 40, Boost{Ub: 60})
	require.NoError(t, err)
	assert.InDelta(t, -tau*math.Log(1-0.982*40.0/60.0), settle, 1e-12)

	noBoost, err := SettlingTime(p, 40, Boost{})
	require.NoError(t, err)
	assert.Less(t, settle, noBoost)
}

func TestSettlingTimeEarlySwitch(t *testing.T) {
	// Switching well before the boost envelope reaches the threshold takes
	// the post-switch branch: the crossing lands after Tsw and still beats
	// the plain CW drive.
	p := bench40H()
	tau := 2 * p.Ls / p.Rs
	b := Boost{Ub: 60, Tsw: 0.1 * tau}

	settle, err := SettlingTime(p, 40, b)
	require.NoError(t, err)

	noBoost, err := SettlingTime(p, 40, Boost{})
	require.NoError(t, err)

	assert.Greater(t, settle, b.Tsw)
	assert.Less(t, settle, noBoost)
}

func TestEvaluateBoost(t *testing.T) {
	bp, err := EvaluateBoost(bench40H(), 40, 60)
	require.NoError(t, err)

	assert.Greater(t, bp.SwitchingTime, 0.0)
	assert.Less(t, bp.SettleBoost, bp.SettleNoBoost)
	assert.InDelta(t, bp.SettleNoBoost-bp.SettleBoost, bp.DeltaTime, 1e-15)
	assert.InDelta(t, 73.5, bp.Improvement, 1.0)
}

func TestEvaluateBoostRejectsBadVoltages(t *testing.T) {
	p := bench40H()

	_, err := EvaluateBoost(p, 40, 30)
	assert.ErrorIs(t, err, bvd.ErrInvalidBoost)

	_, err = EvaluateBoost(p, 40, 40)
	assert.ErrorIs(t, err, bvd.ErrInvalidBoost)

	_, err = EvaluateBoost(p, 0, 60)
	assert.ErrorIs(t, err, bvd.ErrInvalidParameter)
}
