package sim

import (
	"fmt"

	coretemp "github.com/milosgajdos/go-coretemp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

// Trace is a record of a simulated filter run.
// Truth, Measured and Filtered store (step, core temperature) rows.
type Trace struct {
	// Truth is the simulated core temperature
	Truth *mat.Dense
	// Measured is core temperature obtained by inverting each heart rate sample
	Measured *mat.Dense
	// Filtered is the filter estimate
	Filtered *mat.Dense
	// HR stores the simulated heart rate measurements
	HR []float64
	// Status stores the filter update statuses
	Status []coretemp.Status
	// Estimates stores filter estimates of nominal updates
	Estimates []coretemp.Estimate
}

// Run feeds f with heart rate of subject s following the core temperature profile
// and records the results in a trace.
// It returns error if profile is empty.
func Run(f coretemp.Filter, s *Subject, profile []float64) (*Trace, error) {
	steps := len(profile)
	if steps == 0 {
		return nil, fmt.Errorf("invalid core temperature profile size: %d", steps)
	}

	t := &Trace{
		Truth:    mat.NewDense(steps, 2, nil),
		Measured: mat.NewDense(steps, 2, nil),
		Filtered: mat.NewDense(steps, 2, nil),
		HR:       make([]float64, steps),
		Status:   make([]coretemp.Status, steps),
	}

	measured := f.Estimate().CT()
	for i, ct := range profile {
		hr := s.HeartRate(ct)
		measured, _ = s.Model().InverseCT(hr, measured)

		est, status := f.Update(hr)
		if status.OK() {
			t.Estimates = append(t.Estimates, f.Estimate())
		}

		t.Truth.Set(i, 0, float64(i))
		t.Truth.Set(i, 1, ct)
		t.Measured.Set(i, 0, float64(i))
		t.Measured.Set(i, 1, measured)
		t.Filtered.Set(i, 0, float64(i))
		t.Filtered.Set(i, 1, est)
		t.HR[i] = hr
		t.Status[i] = status
	}

	return t, nil
}

// Rejected returns the number of rejected heart rate measurements
func (t *Trace) Rejected() int {
	n := 0
	for _, s := range t.Status {
		if !s.OK() {
			n++
		}
	}

	return n
}

// Plot returns a plot of the trace
func (t *Trace) Plot() (*plot.Plot, error) {
	return New2DPlot(t.Truth, t.Measured, t.Filtered)
}
