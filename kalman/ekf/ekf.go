package ekf

import (
	"fmt"
	"math"

	coretemp "github.com/milosgajdos/go-coretemp"
	"github.com/milosgajdos/go-coretemp/estimate"
	"github.com/milosgajdos/go-coretemp/model"
	"github.com/milosgajdos/go-coretemp/noise"
	"github.com/milosgajdos/go-coretemp/window"
	"go.uber.org/zap"
)

const (
	// MinGain is the lower bound of Kalman gain
	MinGain = 0.0001
	// MaxGain is the upper bound of Kalman gain
	MaxGain = 1.0
)

// clamper is implemented by models which report slope clamping
type clamper interface {
	DerivativeClamped(ct float64) (float64, bool)
}

// EKF is Extended Kalman Filter estimating core temperature from heart rate.
// The state is a random walk of core temperature observed through the
// nonlinear model HR = m.PredictedHR(CT), linearised at every update.
//
// EKF is not safe for concurrent use: callers feeding it from several
// goroutines must serialize calls to Update.
type EKF struct {
	// m is HR observation model
	m coretemp.Model
	// q is state noise a.k.a. process noise
	q coretemp.Noise
	// r is output noise a.k.a. measurement noise
	r coretemp.Noise
	// ct is core temperature estimate
	ct float64
	// p is estimate variance
	p float64
	// k is the last Kalman gain
	k float64
	// inn is the last innovation
	inn float64
	// w stores the most recent observations
	w *window.Window
	// log receives diagnostic events
	log *zap.Logger
	// obs receives diagnostic events
	obs func(coretemp.Event)
}

// New creates new EKF and returns it.
// It accepts the following parameters:
//   - m:      HR observation model
//   - init:   initial condition of the filter
//   - q:      state a.k.a. process noise; only its variance is used
//   - r:      output a.k.a. measurement noise; only its variance is used
//
// Nil noise is treated as zero noise.
// It returns error if either of the following conditions is met:
//   - nil model or initial condition is given
//   - initial condition is not one dimensional or its variance is negative
//   - noise variance is negative
//   - window size option is not positive
func New(m coretemp.Model, init coretemp.InitCond, q, r coretemp.Noise, opts ...Option) (*EKF, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid model: %v", m)
	}

	if init == nil {
		return nil, fmt.Errorf("invalid initial condition: %v", init)
	}

	state, cov := init.State(), init.Cov()
	if state.Len() != 1 || cov.SymmetricDim() != 1 {
		return nil, fmt.Errorf("invalid initial condition dimensions: state %d, cov %d", state.Len(), cov.SymmetricDim())
	}

	ct, p := state.AtVec(0), cov.At(0, 0)
	if math.IsNaN(ct) || math.IsInf(ct, 0) {
		return nil, fmt.Errorf("invalid initial core temperature: %v", ct)
	}

	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return nil, fmt.Errorf("invalid initial variance: %v", p)
	}

	if q != nil {
		if v := q.Variance(); math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("invalid state noise variance: %v", v)
		}
	} else {
		q, _ = noise.NewNone()
	}

	if r != nil {
		if v := r.Variance(); math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("invalid output noise variance: %v", v)
		}
	} else {
		r, _ = noise.NewNone()
	}

	o := Options{
		Logger:     zap.NewNop(),
		WindowSize: window.DefaultSize,
	}
	for _, apply := range opts {
		apply(&o)
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	w, err := window.New(o.WindowSize)
	if err != nil {
		return nil, err
	}

	return &EKF{
		m:   m,
		q:   q,
		r:   r,
		ct:  ct,
		p:   p,
		w:   w,
		log: o.Logger,
		obs: o.Observer,
	}, nil
}

// NewWithConfig creates new EKF from configuration c and returns it.
// Options in opts override the window size in c.
// It returns error if c is invalid.
func NewWithConfig(c Config, opts ...Option) (*EKF, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, err := model.NewSigmoid(c.Sigmoid)
	if err != nil {
		return nil, err
	}

	init, err := model.NewInitCond(c.InitialCT, c.InitialVariance)
	if err != nil {
		return nil, err
	}

	q, err := noise.NewGaussian(0, c.ProcessNoise)
	if err != nil {
		return nil, fmt.Errorf("failed to create state noise: %v", err)
	}

	r, err := noise.NewGaussian(0, c.SensorNoise)
	if err != nil {
		return nil, fmt.Errorf("failed to create output noise: %v", err)
	}

	return New(m, init, q, r, append([]Option{WithWindowSize(c.WindowSize)}, opts...)...)
}

// Update fuses heart rate measurement hr into the filter and returns the new core temperature estimate.
// Measurements the model can't invert leave the filter untouched: Update then returns
// the previous estimate along with a non-nominal status.
// Update never fails on finite or non-finite input and always returns a finite estimate.
func (k *EKF) Update(hr float64) (float64, coretemp.Status) {
	if _, status := k.m.InverseCT(hr, k.ct); status != coretemp.StatusNominal {
		kind := coretemp.EventOutOfRange
		if status == coretemp.StatusDegenerateInversion {
			kind = coretemp.EventDegenerateInversion
		}
		k.emit(kind, hr, hr)

		return k.ct, status
	}

	pNext := k.predict(hr)
	k.correct(hr, pNext)
	k.w.Push(hr)

	k.emit(coretemp.EventUpdate, hr, k.k)

	return k.ct, coretemp.StatusNominal
}

// predict carries the estimate forward and returns its inflated variance.
// The variance saturates at math.MaxFloat64.
func (k *EKF) predict(hr float64) float64 {
	p := k.p + k.q.Variance()
	if math.IsInf(p, 1) {
		k.emit(coretemp.EventVarianceClamp, hr, p)
		p = math.MaxFloat64
	}

	return p
}

// correct updates the estimate with measurement hr given predicted variance pNext
func (k *EKF) correct(hr, pNext float64) {
	y := k.m.PredictedHR(k.ct)

	// observation slope
	var h float64
	if c, ok := k.m.(clamper); ok {
		var clamped bool
		if h, clamped = c.DerivativeClamped(k.ct); clamped {
			k.emit(coretemp.EventDerivativeFloor, hr, h)
		}
	} else {
		h = k.m.Derivative(k.ct)
	}

	// innovation variance: H*P*H' + R
	s := h*h*pNext + k.r.Variance()

	gain := 0.0
	if s > 0 {
		gain = pNext * h / s
	}

	switch {
	case math.IsNaN(gain) || gain < MinGain:
		k.emit(coretemp.EventGainClamp, hr, gain)
		gain = MinGain
	case gain > MaxGain:
		k.emit(coretemp.EventGainClamp, hr, gain)
		gain = MaxGain
	}

	k.inn = hr - y
	k.k = gain
	k.ct = k.ct + gain*k.inn

	p := (1 - gain*h) * pNext
	if p < 0 {
		k.emit(coretemp.EventVarianceClamp, hr, p)
		p = 0
	}
	k.p = p
}

func (k *EKF) emit(kind coretemp.EventKind, hr, val float64) {
	if k.obs != nil {
		k.obs(coretemp.Event{
			Kind:     kind,
			HR:       hr,
			CT:       k.ct,
			Variance: k.p,
			Value:    val,
		})
	}

	k.log.Debug("ekf event",
		zap.Stringer("kind", kind),
		zap.Float64("hr", hr),
		zap.Float64("ct", k.ct),
		zap.Float64("variance", k.p),
		zap.Float64("value", val),
	)
}

// Estimate returns the current estimate
func (k *EKF) Estimate() coretemp.Estimate {
	// ct and p are kept finite and non-negative
	est, err := estimate.NewBaseWithVariance(k.ct, k.p)
	if err != nil {
		panic(fmt.Sprintf("ekf: invalid state: %v", err))
	}

	return est
}

// CT returns the current core temperature estimate
func (k *EKF) CT() float64 {
	return k.ct
}

// Variance returns EKF variance
func (k *EKF) Variance() float64 {
	return k.p
}

// Gain returns the Kalman gain of the last nominal update
func (k *EKF) Gain() float64 {
	return k.k
}

// Innovation returns the innovation of the last nominal update
func (k *EKF) Innovation() float64 {
	return k.inn
}

// Observations returns a copy of the accepted heart rate observations, oldest first
func (k *EKF) Observations() []float64 {
	return k.w.Values()
}

// Trend returns the heart rate slope per observation over the observation window
func (k *EKF) Trend() float64 {
	return k.w.Trend()
}

// Model returns EKF model
func (k *EKF) Model() coretemp.Model {
	return k.m
}

// StateNoise returns state noise
func (k *EKF) StateNoise() coretemp.Noise {
	return k.q
}

// OutputNoise returns output noise
func (k *EKF) OutputNoise() coretemp.Noise {
	return k.r
}
