// Package window implements a fixed capacity FIFO of heart rate observations.
package window

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// DefaultSize is the default window capacity: one hour of minute samples.
const DefaultSize = 60

// Window is a ring buffer holding the most recent observations in arrival order.
// Window is not safe for concurrent use.
type Window struct {
	buf   []float64
	start int
	n     int
}

// New creates new Window with the given capacity and returns it.
// It returns error if size is not positive.
func New(size int) (*Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid window size: %d", size)
	}

	return &Window{buf: make([]float64, size)}, nil
}

// Push appends v evicting the oldest observation when the window is full.
func (w *Window) Push(v float64) {
	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = v
		w.n++
		return
	}

	w.buf[w.start] = v
	w.start = (w.start + 1) % len(w.buf)
}

// Len returns number of stored observations
func (w *Window) Len() int {
	return w.n
}

// Cap returns window capacity
func (w *Window) Cap() int {
	return len(w.buf)
}

// Values returns a copy of stored observations, oldest first.
func (w *Window) Values() []float64 {
	vals := make([]float64, w.n)
	for i := range vals {
		vals[i] = w.buf[(w.start+i)%len(w.buf)]
	}

	return vals
}

// Last returns the most recent observation.
// It returns false if the window is empty.
func (w *Window) Last() (float64, bool) {
	if w.n == 0 {
		return 0, false
	}

	return w.buf[(w.start+w.n-1)%len(w.buf)], true
}

// Mean returns mean of stored observations or zero if the window is empty.
func (w *Window) Mean() float64 {
	if w.n == 0 {
		return 0
	}

	return stat.Mean(w.Values(), nil)
}

// Trend returns the least squares slope of the observations per sample.
// It returns zero if fewer than two observations are stored.
func (w *Window) Trend() float64 {
	if w.n < 2 {
		return 0
	}

	xs := make([]float64, w.n)
	for i := range xs {
		xs[i] = float64(i)
	}

	_, beta := stat.LinearRegression(xs, w.Values(), nil, false)

	return beta
}
