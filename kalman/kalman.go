package kalman

import coretemp "github.com/milosgajdos/go-coretemp"

// Kalman is Kalman Filter
type Kalman interface {
	// coretemp.Filter is core temperature filter
	coretemp.Filter
	// Variance returns Kalman filter state variance
	Variance() float64
	// Gain returns the last Kalman filter gain
	Gain() float64
}
