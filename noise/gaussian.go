package noise

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is scalar gaussian noise
type Gaussian struct {
	// dist is a univariate normal distribution
	dist distuv.Normal
	// mean is Gaussian mean
	mean float64
	// variance is Gaussian variance
	variance float64
	// seed seeds the noise source; zero means time based seed
	seed uint64
}

// NewGaussian creates new Gaussian noise with given mean and variance.
// The noise source is seeded from the current time.
// It returns error if it fails to create Gaussian.
func NewGaussian(mean, variance float64) (*Gaussian, error) {
	return NewGaussianWithSeed(mean, variance, 0)
}

// NewGaussianWithSeed creates new Gaussian noise with given mean and variance
// whose samples are drawn from a source seeded with seed.
// Two noises with the same non-zero seed generate the same samples.
// It returns error if either mean or variance are invalid.
func NewGaussianWithSeed(mean, variance float64, seed uint64) (*Gaussian, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("invalid Gaussian mean: %v", mean)
	}

	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance < 0 {
		return nil, fmt.Errorf("invalid Gaussian variance: %v", variance)
	}

	g := &Gaussian{
		mean:     mean,
		variance: variance,
		seed:     seed,
	}
	g.dist = g.newDist()

	return g, nil
}

func (g *Gaussian) newDist() distuv.Normal {
	seed := g.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return distuv.Normal{
		Mu:    g.mean,
		Sigma: math.Sqrt(g.variance),
		Src:   rand.NewSource(seed),
	}
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() float64 {
	return g.dist.Rand()
}

// Variance returns Gaussian variance.
func (g *Gaussian) Variance() float64 {
	return g.variance
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() float64 {
	return g.mean
}

// Reset resets Gaussian noise.
// Seeded noise restarts its sample sequence from the beginning.
func (g *Gaussian) Reset() error {
	g.dist = g.newDist()

	return nil
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{Mean=%v Variance=%v}", g.mean, g.variance)
}
