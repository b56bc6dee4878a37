package sim

import (
	"fmt"

	coretemp "github.com/milosgajdos/go-coretemp"
	"github.com/milosgajdos/go-coretemp/noise"
	"gonum.org/v1/gonum/floats"
)

// Subject is a simulated person whose heart rate follows their core temperature
type Subject struct {
	// m maps core temperature to heart rate
	m coretemp.Model
	// n is heart rate sensor noise
	n coretemp.Noise
}

// NewSubject creates new Subject and returns it.
// Nil n simulates a noiseless sensor.
// It returns error if m is nil.
func NewSubject(m coretemp.Model, n coretemp.Noise) (*Subject, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid model: %v", m)
	}

	if n == nil {
		n, _ = noise.NewNone()
	}

	return &Subject{m: m, n: n}, nil
}

// Model returns subject model
func (s *Subject) Model() coretemp.Model {
	return s.m
}

// HeartRate returns a noisy heart rate measurement at core temperature ct
func (s *Subject) HeartRate(ct float64) float64 {
	return s.m.PredictedHR(ct) + s.n.Sample()
}

// Ramp returns n core temperatures evenly spaced between from and to.
// It returns error if n is smaller than 2.
func Ramp(from, to float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("invalid number of ramp steps: %d", n)
	}

	return floats.Span(make([]float64, n), from, to), nil
}

// HeatStress returns n core temperatures of a heat stress episode:
// rest at rest, rise to peak, plateau at peak and recovery back to rest,
// each phase lasting a quarter of the episode.
// It returns error if n is smaller than 8.
func HeatStress(rest, peak float64, n int) ([]float64, error) {
	if n < 8 {
		return nil, fmt.Errorf("invalid number of episode steps: %d", n)
	}

	phase := n / 4
	profile := make([]float64, 0, n)

	for i := 0; i < phase; i++ {
		profile = append(profile, rest)
	}

	rise, _ := Ramp(rest, peak, phase)
	profile = append(profile, rise...)

	for i := 0; i < phase; i++ {
		profile = append(profile, peak)
	}

	// recovery takes whatever is left
	fall, _ := Ramp(peak, rest, n-len(profile))
	profile = append(profile, fall...)

	return profile, nil
}
