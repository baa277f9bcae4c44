package bvd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToOpenCircuit(t *testing.T) {
	p := New(24.764, 38.959e-3, 400.33e-12, 3970.1e-12)

	assert.True(t, p.OpenCircuit())
	assert.True(t, math.IsInf(p.Rp, 1))
	require.NoError(t, p.Validate())
}

func TestWithRpDoesNotMutate(t *testing.T) {
	p := New(24.764, 38.959e-3, 400.33e-12, 3970.1e-12)
	damped := p.WithRp(950)

	assert.Equal(t, 950.0, damped.Rp)
	assert.False(t, damped.OpenCircuit())
	assert.True(t, p.OpenCircuit(), "original must stay open-circuit")
}

func TestZeroValueRpMeansOpenCircuit(t *testing.T) {
	p := Params{Rs: 24.764, Ls: 38.959e-3, Cs: 400.33e-12, C0: 3970.1e-12}

	assert.True(t, p.OpenCircuit())
	require.NoError(t, p.Validate())
}

func TestValidateRejectsNonPositiveParameters(t *testing.T) {
	base := New(24.764, 38.959e-3, 400.33e-12, 3970.1e-12)

	cases := map[string]Params{}

	negRs := base
	negRs.Rs = -24.764
	cases["negative rs"] = negRs

	zeroLs := base
	zeroLs.Ls = 0
	cases["zero ls"] = zeroLs

	zeroCs := base
	zeroCs.Cs = 0
	cases["zero cs"] = zeroCs

	negC0 := base
	negC0.C0 = -3970.1e-12
	cases["negative c0"] = negC0

	cases["negative rp"] = base.WithRp(-100)
	cases["nan rs"] = Params{Rs: math.NaN(), Ls: 1, Cs: 1, C0: 1}
	cases["infinite ls"] = Params{Rs: 1, Ls: math.Inf(1), Cs: 1, C0: 1}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestValidateAcceptsInfiniteRp(t *testing.T) {
	p := New(21.05, 35.15e-3, 448.62e-12, 4075.69e-12).WithRp(math.Inf(1))
	require.NoError(t, p.Validate())
	assert.True(t, p.OpenCircuit())
}

func TestResonanceFrequency(t *testing.T) {
	freq, err := ResonanceFrequency(38.959e-3, 400.33e-12)
	require.NoError(t, err)

	expected := 1 / (2 * math.Pi * math.Sqrt(38.959e-3*400.33e-12))
	assert.InDelta(t, expected, freq, 1e-9)
	assert.InDelta(t, 40300.2, freq, 1.0) // ~40 kHz device
}

func TestResonanceFrequencyInvalid(t *testing.T) {
	_, err := ResonanceFrequency(0, 400.33e-12)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ResonanceFrequency(38.959e-3, -1e-12)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParamsString(t *testing.T) {
	p := New(24.764, 38.959e-3, 400.33e-12, 3970.1e-12)
	s := p.String()
	assert.Contains(t, s, "Rs=24.764 Ohm")
	assert.Contains(t, s, "Ls=38.959 mH")
	assert.Contains(t, s, "Rp=open")

	s = p.WithRp(950).String()
	assert.Contains(t, s, "Rp=950.000 Ohm")
}
