package coretemp

import "gonum.org/v1/gonum/mat"

// Model relates core body temperature (CT) to heart rate (HR)
type Model interface {
	// PredictedHR returns heart rate expected at core temperature ct
	PredictedHR(ct float64) float64
	// InverseCT recovers core temperature from heart rate hr.
	// It returns lastCT and a non-nominal status if hr can't be inverted.
	InverseCT(hr, lastCT float64) (float64, Status)
	// Derivative returns the slope of PredictedHR at ct
	Derivative(ct float64) float64
	// Bounds returns the lower and upper HR asymptotes of the model
	Bounds() (lo, hi float64)
}

// Filter is a recursive core temperature filter
type Filter interface {
	// Update fuses heart rate measurement hr into the filter state
	// and returns the new core temperature estimate
	Update(hr float64) (float64, Status)
	// Estimate returns the current filter estimate
	Estimate() Estimate
}

// Smoother smooths filter estimates
type Smoother interface {
	// Smooth returns smoothed estimates
	Smooth([]Estimate) ([]Estimate, error)
}

// InitCond is initial state condition of the filter
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Estimate is core temperature filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
	// CT returns estimated core temperature
	CT() float64
	// Variance returns estimate variance
	Variance() float64
}

// Noise is a scalar noise
type Noise interface {
	// Mean returns noise mean
	Mean() float64
	// Variance returns noise variance
	Variance() float64
	// Sample returns a sample of the noise
	Sample() float64
	// Reset resets the noise
	Reset() error
}
