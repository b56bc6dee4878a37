package rts

import (
	"fmt"
	"math"

	coretemp "github.com/milosgajdos/go-coretemp"
	"github.com/milosgajdos/go-coretemp/estimate"
	"github.com/milosgajdos/go-coretemp/noise"
)

// RTS is Rauch-Tung-Striebel smoother of core temperature estimates.
// It assumes the random walk state model used by the core temperature filter:
// core temperature is carried over between observations and its variance grows
// by the process noise variance.
type RTS struct {
	// q is state noise a.k.a. process noise
	q coretemp.Noise
}

// New creates new RTS and returns it.
// Nil q is treated as zero noise.
// It returns error if q variance is invalid.
func New(q coretemp.Noise) (*RTS, error) {
	if q != nil {
		if v := q.Variance(); math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("invalid state noise variance: %v", v)
		}
	} else {
		q, _ = noise.NewNone()
	}

	return &RTS{
		q: q,
	}, nil
}

// Smooth implements Rauch-Tung-Striebel smoothing algorithm.
// est must hold consecutive filtered estimates, one per accepted observation, oldest first.
// It returns error if est is empty or contains nil estimates.
func (s *RTS) Smooth(est []coretemp.Estimate) ([]coretemp.Estimate, error) {
	if len(est) == 0 {
		return nil, fmt.Errorf("invalid estimates size: %d", len(est))
	}

	for i := range est {
		if est[i] == nil {
			return nil, fmt.Errorf("invalid estimate at %d", i)
		}
	}

	sx := make([]coretemp.Estimate, len(est))

	n := len(est) - 1
	// last filtered estimate is already smoothed
	e, err := estimate.NewBaseWithVariance(est[n].CT(), est[n].Variance())
	if err != nil {
		return nil, err
	}
	sx[n] = e

	for i := n - 1; i >= 0; i-- {
		x, p := est[i].CT(), est[i].Variance()

		// predicted variance of the next step
		pNext := p + s.q.Variance()

		// smoothing gain
		c := 0.0
		if pNext > 0 {
			c = p / pNext
		}

		xs := x + c*(sx[i+1].CT()-x)
		ps := p + c*c*(sx[i+1].Variance()-pNext)
		if ps < 0 {
			ps = 0
		}

		e, err := estimate.NewBaseWithVariance(xs, ps)
		if err != nil {
			return nil, err
		}
		sx[i] = e
	}

	return sx, nil
}
