package model

import (
	"fmt"
	"math"

	coretemp "github.com/milosgajdos/go-coretemp"
)

const (
	// MaxExponent bounds the exponent argument of the logistic term
	MaxExponent = 700.0
	// MinHRExcess is the smallest HR excess over the lower asymptote used
	// when evaluating the model slope
	MinHRExcess = 1.0
	// DerivativeFloor is the smallest magnitude of the model slope
	DerivativeFloor = 1e-6
)

// Params are generalized logistic curve parameters relating CT to HR:
//
//	HR(ct) = A + (K - A) / (1 + Q*exp(-Beta*(ct - M)))^(1/V)
type Params struct {
	// A is the lower HR asymptote
	A float64 `mapstructure:"A"`
	// K is the upper HR asymptote
	K float64 `mapstructure:"K"`
	// Q scales the exponential term
	Q float64 `mapstructure:"Q"`
	// Beta is the growth rate
	Beta float64 `mapstructure:"beta"`
	// M is the inflection midpoint in CT units
	M float64 `mapstructure:"M"`
	// V is the shape parameter
	V float64 `mapstructure:"v"`
}

// DefaultParams returns parameters calibrated for adult subjects.
func DefaultParams() Params {
	return Params{
		A:    41,
		K:    152,
		Q:    0.06,
		Beta: 0.89,
		M:    37.84,
		V:    0.07,
	}
}

// Validate returns error if p does not describe a monotonic sigmoid.
func (p Params) Validate() error {
	for _, param := range []struct {
		name string
		val  float64
	}{
		{"A", p.A}, {"K", p.K}, {"Q", p.Q}, {"beta", p.Beta}, {"M", p.M}, {"v", p.V},
	} {
		if math.IsNaN(param.val) || math.IsInf(param.val, 0) {
			return fmt.Errorf("invalid parameter %s: %v", param.name, param.val)
		}
	}

	if p.K <= p.A {
		return fmt.Errorf("invalid asymptotes: K (%v) must be bigger than A (%v)", p.K, p.A)
	}

	// the slope is evaluated no closer than MinHRExcess to A
	if p.K-p.A <= MinHRExcess {
		return fmt.Errorf("invalid asymptotes: K - A (%v) must exceed %v", p.K-p.A, MinHRExcess)
	}

	if p.Beta <= 0 {
		return fmt.Errorf("invalid growth rate: %v", p.Beta)
	}

	if p.Q <= 0 {
		return fmt.Errorf("invalid Q: %v", p.Q)
	}

	if p.V <= 0 {
		return fmt.Errorf("invalid v: %v", p.V)
	}

	return nil
}

// Sigmoid is a generalized logistic model of HR as a function of CT.
// It implements coretemp.Model.
type Sigmoid struct {
	p Params
}

// NewSigmoid creates new Sigmoid model with parameters p and returns it.
// It returns error if p fails to validate.
func NewSigmoid(p Params) (*Sigmoid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Sigmoid{p: p}, nil
}

// Params returns model parameters
func (s *Sigmoid) Params() Params {
	return s.p
}

// Bounds returns the lower and upper HR asymptotes
func (s *Sigmoid) Bounds() (float64, float64) {
	return s.p.A, s.p.K
}

// PredictedHR returns heart rate at core temperature ct.
// The result stays within [A, K] and is finite for any finite ct.
func (s *Sigmoid) PredictedHR(ct float64) float64 {
	x := -s.p.Beta * (ct - s.p.M)
	x = math.Max(-MaxExponent, math.Min(MaxExponent, x))

	den := math.Pow(1+s.p.Q*math.Exp(x), 1/s.p.V)

	return s.p.A + (s.p.K-s.p.A)/den
}

// InverseCT returns core temperature at which the model predicts heart rate hr.
// If hr is not finite or falls outside [A, K] it returns lastCT with coretemp.StatusOutOfRange.
// If hr equals A or the inversion would take a logarithm of a non-positive number
// it returns lastCT with coretemp.StatusDegenerateInversion.
func (s *Sigmoid) InverseCT(hr, lastCT float64) (float64, coretemp.Status) {
	if math.IsNaN(hr) || hr < s.p.A || hr > s.p.K {
		return lastCT, coretemp.StatusOutOfRange
	}

	excess := hr - s.p.A
	if excess <= 0 {
		return lastCT, coretemp.StatusDegenerateInversion
	}

	term := math.Pow((s.p.K-s.p.A)/excess, s.p.V) - 1
	if term/s.p.Q <= 0 || math.IsInf(term, 1) {
		return lastCT, coretemp.StatusDegenerateInversion
	}

	return s.p.M - math.Log(term/s.p.Q)/s.p.Beta, coretemp.StatusNominal
}

// Derivative returns the slope of PredictedHR at ct.
// Its magnitude never drops below DerivativeFloor.
func (s *Sigmoid) Derivative(ct float64) float64 {
	d, _ := s.DerivativeClamped(ct)
	return d
}

// DerivativeClamped returns the slope of PredictedHR at ct and reports
// whether the slope had to be clamped to DerivativeFloor.
func (s *Sigmoid) DerivativeClamped(ct float64) (float64, bool) {
	span := s.p.K - s.p.A
	y := math.Max(s.PredictedHR(ct)-s.p.A, MinHRExcess)

	// with u = 1 + Q*exp(-Beta*(ct-M)): y = span/u^(1/V) and dy/dct = (Beta/V)*y*(u-1)/u
	d := (s.p.Beta / s.p.V) * y * (1 - math.Pow(y/span, s.p.V))

	if math.Abs(d) < DerivativeFloor {
		if d < 0 {
			return -DerivativeFloor, true
		}
		return DerivativeFloor, true
	}

	return d, false
}
