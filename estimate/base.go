package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Base is base core temperature estimate
type Base struct {
	// ct is estimated core temperature
	ct float64
	// variance is estimate variance
	variance float64
}

// NewBase returns base estimate of core temperature ct with zero variance
func NewBase(ct float64) (*Base, error) {
	return NewBaseWithVariance(ct, 0)
}

// NewBaseWithVariance returns base estimate of core temperature ct with given variance.
// It returns error if either value is not finite or if variance is negative.
func NewBaseWithVariance(ct, variance float64) (*Base, error) {
	if math.IsNaN(ct) || math.IsInf(ct, 0) {
		return nil, fmt.Errorf("invalid core temperature: %v", ct)
	}

	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance < 0 {
		return nil, fmt.Errorf("invalid variance: %v", variance)
	}

	return &Base{
		ct:       ct,
		variance: variance,
	}, nil
}

// CT returns estimated core temperature
func (b *Base) CT() float64 {
	return b.ct
}

// Variance returns estimate variance
func (b *Base) Variance() float64 {
	return b.variance
}

// Val returns estimated value as a vector of length 1
func (b *Base) Val() mat.Vector {
	return mat.NewVecDense(1, []float64{b.ct})
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	return mat.NewSymDense(1, []float64{b.variance})
}

// String implements the Stringer interface.
func (b *Base) String() string {
	return fmt.Sprintf("Estimate{CT=%.4f Variance=%.6g}", b.ct, b.variance)
}
