package model

import (
	"math"
	"testing"

	coretemp "github.com/milosgajdos/go-coretemp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

func TestParamsValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(DefaultParams().Validate())

	for _, mutate := range []func(p *Params){
		func(p *Params) { p.K = p.A },
		func(p *Params) { p.K = p.A - 1 },
		func(p *Params) { p.Beta = 0 },
		func(p *Params) { p.Q = -0.1 },
		func(p *Params) { p.V = 0 },
		func(p *Params) { p.M = math.NaN() },
		func(p *Params) { p.K = math.Inf(1) },
		func(p *Params) { p.K = p.A + MinHRExcess },
		func(p *Params) { p.K = p.A + 0.8 },
	} {
		p := DefaultParams()
		mutate(&p)
		assert.Error(p.Validate())

		s, err := NewSigmoid(p)
		assert.Nil(s)
		assert.Error(err)
	}

	// the first invalid parameter is reported
	for i := 0; i < 10; i++ {
		p := Params{A: math.NaN(), K: math.NaN(), Q: math.NaN(), Beta: math.NaN(), M: math.NaN(), V: math.NaN()}
		assert.EqualError(p.Validate(), "invalid parameter A: NaN")
	}
}

func TestSigmoidPredictedHR(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSigmoid(DefaultParams())
	assert.NotNil(s)
	assert.NoError(err)

	a, k := s.Bounds()
	assert.Equal(41.0, a)
	assert.Equal(152.0, k)

	assert.InDelta(61.18919654329298, s.PredictedHR(37.0), 1e-9)
	assert.InDelta(89.2848201239251, s.PredictedHR(37.84), 1e-9)

	// strictly inside the asymptotes where float64 can resolve it
	for ct := 33.0; ct <= 50.0; ct += 0.25 {
		hr := s.PredictedHR(ct)
		assert.Greater(hr, a, "ct=%v", ct)
		assert.Less(hr, k, "ct=%v", ct)
	}

	// monotonic
	prev := s.PredictedHR(30)
	for ct := 30.1; ct <= 45.0; ct += 0.1 {
		hr := s.PredictedHR(ct)
		assert.GreaterOrEqual(hr, prev)
		prev = hr
	}

	// extreme inputs never overflow
	for _, ct := range []float64{-math.MaxFloat64, -1e300, -1e6, 0, 1e6, 1e300, math.MaxFloat64} {
		hr := s.PredictedHR(ct)
		assert.False(math.IsNaN(hr) || math.IsInf(hr, 0), "ct=%v", ct)
		assert.GreaterOrEqual(hr, a)
		assert.LessOrEqual(hr, k)
	}
}

func TestSigmoidInverseCT(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSigmoid(DefaultParams())
	assert.NotNil(s)
	assert.NoError(err)

	last := 36.6

	for _, tc := range []struct {
		hr     float64
		ct     float64
		status coretemp.Status
	}{
		{hr: 60, ct: 36.958239038724585, status: coretemp.StatusNominal},
		{hr: 80, ct: 37.57491433585272, status: coretemp.StatusNominal},
		{hr: 100, ct: 38.157444238760064, status: coretemp.StatusNominal},
		{hr: 120, ct: 38.86527001481558, status: coretemp.StatusNominal},
		{hr: 140, ct: 40.09820899685786, status: coretemp.StatusNominal},
		{hr: 41.2, ct: 35.33774215872238, status: coretemp.StatusNominal},
		{hr: 41.5, ct: 35.55225691166521, status: coretemp.StatusNominal},
		{hr: 41.9, ct: 35.70616408765764, status: coretemp.StatusNominal},
		{hr: 42, ct: 35.735397021228756, status: coretemp.StatusNominal},
		{hr: 41, ct: last, status: coretemp.StatusDegenerateInversion},
		{hr: 152, ct: last, status: coretemp.StatusDegenerateInversion},
		{hr: 40, ct: last, status: coretemp.StatusOutOfRange},
		{hr: 153, ct: last, status: coretemp.StatusOutOfRange},
		{hr: math.NaN(), ct: last, status: coretemp.StatusOutOfRange},
		{hr: math.Inf(1), ct: last, status: coretemp.StatusOutOfRange},
		{hr: math.Inf(-1), ct: last, status: coretemp.StatusOutOfRange},
	} {
		ct, status := s.InverseCT(tc.hr, last)
		assert.Equal(tc.status, status, "hr=%v", tc.hr)
		assert.InDelta(tc.ct, ct, 1e-9, "hr=%v", tc.hr)
	}
}

func TestSigmoidRoundTrip(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSigmoid(DefaultParams())
	assert.NotNil(s)
	assert.NoError(err)

	for ct := 36.0; ct <= 41.0; ct += 0.1 {
		back, status := s.InverseCT(s.PredictedHR(ct), 0)
		assert.Equal(coretemp.StatusNominal, status)
		assert.InDelta(ct, back, 1e-6, "ct=%v", ct)
	}

	for _, hr := range []float64{41.2, 41.5, 41.9, 42.5, 43} {
		ct, status := s.InverseCT(hr, 0)
		assert.Equal(coretemp.StatusNominal, status)
		assert.InDelta(hr, s.PredictedHR(ct), 1e-6, "hr=%v", hr)
	}

	for hr := 45.0; hr <= 150.0; hr += 1.0 {
		ct, status := s.InverseCT(hr, 0)
		assert.Equal(coretemp.StatusNominal, status)
		assert.InDelta(hr, s.PredictedHR(ct), 1e-6, "hr=%v", hr)
	}
}

func TestSigmoidDerivative(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSigmoid(DefaultParams())
	assert.NotNil(s)
	assert.NoError(err)

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}
	for ct := 36.0; ct <= 41.0; ct += 0.25 {
		want := fd.Derivative(s.PredictedHR, ct, settings)
		got, clamped := s.DerivativeClamped(ct)
		assert.False(clamped)
		assert.InEpsilon(want, got, 1e-5, "ct=%v", ct)
	}

	assert.InDelta(28.868653750262112, s.Derivative(37.0), 1e-9)

	// HR saturates at K: slope is clamped to the floor
	d, clamped := s.DerivativeClamped(1e300)
	assert.True(clamped)
	assert.Equal(DerivativeFloor, d)

	// HR saturates at A: HR excess is floored so the slope stays away from zero
	d, clamped = s.DerivativeClamped(-1e300)
	assert.False(clamped)
	assert.InDelta(3.570640676630471, d, 1e-9)
}

func TestSigmoidDerivativePositive(t *testing.T) {
	assert := assert.New(t)

	for _, p := range []Params{
		DefaultParams(),
		{A: 60, K: 61.5, Q: 0.06, Beta: 0.89, M: 37.84, V: 0.07},
		{A: 10, K: 12, Q: 1, Beta: 1, M: 0, V: 1},
	} {
		s, err := NewSigmoid(p)
		assert.NotNil(s)
		assert.NoError(err)

		for _, ct := range []float64{-1e300, -50, 0, 30, 36, 37.84, 39, 45, 100, 1e300} {
			assert.GreaterOrEqual(s.Derivative(ct), DerivativeFloor, "params=%v ct=%v", p, ct)
		}
	}
}
