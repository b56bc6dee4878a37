package rts

import (
	"math"
	"os"
	"testing"

	coretemp "github.com/milosgajdos/go-coretemp"
	"github.com/milosgajdos/go-coretemp/estimate"
	"github.com/milosgajdos/go-coretemp/kalman/ekf"
	"github.com/milosgajdos/go-coretemp/noise"
	"github.com/milosgajdos/go-coretemp/smooth"
	"github.com/stretchr/testify/assert"
)

var _ smooth.RTS = (*RTS)(nil)

var q coretemp.Noise

func setup() {
	q, _ = noise.NewGaussian(0, 0.001)
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

type invalidNoise struct {
	noise.None
}

func (n *invalidNoise) Variance() float64 { return math.NaN() }

func TestNewRTS(t *testing.T) {
	assert := assert.New(t)

	s, err := New(q)
	assert.NotNil(s)
	assert.NoError(err)

	s, err = New(nil)
	assert.NotNil(s)
	assert.NoError(err)

	s, err = New(&invalidNoise{})
	assert.Nil(s)
	assert.Error(err)
}

func TestRTSSmoothInvalid(t *testing.T) {
	assert := assert.New(t)

	s, err := New(q)
	assert.NoError(err)

	sx, err := s.Smooth(nil)
	assert.Nil(sx)
	assert.Error(err)

	e, _ := estimate.NewBaseWithVariance(37, 0.01)
	sx, err = s.Smooth([]coretemp.Estimate{e, nil})
	assert.Nil(sx)
	assert.Error(err)
}

func TestRTSSmoothStep(t *testing.T) {
	assert := assert.New(t)

	s, err := New(q)
	assert.NoError(err)

	est := make([]coretemp.Estimate, 10)
	for i := range est {
		ct := 37.0
		if i >= 5 {
			ct = 38.0
		}
		est[i], _ = estimate.NewBaseWithVariance(ct, 0.004)
	}

	sx, err := s.Smooth(est)
	assert.NoError(err)
	assert.Len(sx, len(est))

	// last estimate is kept
	assert.Equal(est[9].CT(), sx[9].CT())
	assert.Equal(est[9].Variance(), sx[9].Variance())

	// estimates before the step are pulled towards it
	assert.Greater(sx[4].CT(), est[4].CT())
	assert.Less(sx[4].CT(), 38.0)
	for i := 0; i < 9; i++ {
		assert.LessOrEqual(sx[i].CT(), sx[i+1].CT())
		assert.LessOrEqual(sx[i].Variance(), est[i].Variance())
		assert.GreaterOrEqual(sx[i].Variance(), 0.0)
	}
}

func TestRTSSmoothZeroNoise(t *testing.T) {
	assert := assert.New(t)

	s, err := New(nil)
	assert.NoError(err)

	est := make([]coretemp.Estimate, 3)
	est[0], _ = estimate.NewBaseWithVariance(37.0, 0)
	est[1], _ = estimate.NewBaseWithVariance(37.5, 0)
	est[2], _ = estimate.NewBaseWithVariance(38.0, 0)

	// zero variance estimates are certain: nothing to smooth
	sx, err := s.Smooth(est)
	assert.NoError(err)
	for i := range est {
		assert.Equal(est[i].CT(), sx[i].CT())
		assert.Equal(0.0, sx[i].Variance())
	}
}

func TestRTSSmoothFilter(t *testing.T) {
	assert := assert.New(t)

	c := ekf.DefaultConfig()
	c.ProcessNoise = q.Variance()
	c.SensorNoise = 25
	f, err := ekf.NewWithConfig(c)
	assert.NoError(err)

	hrNoise, err := noise.NewGaussianWithSeed(0, 25, 3)
	assert.NoError(err)

	truth, _ := f.Model().InverseCT(100, 0)

	var est []coretemp.Estimate
	for i := 0; i < 300; i++ {
		if _, status := f.Update(100 + hrNoise.Sample()); status.OK() {
			est = append(est, f.Estimate())
		}
	}

	s, err := New(q)
	assert.NoError(err)

	sx, err := s.Smooth(est)
	assert.NoError(err)
	assert.Len(sx, len(est))

	// skip the filter warm up
	var fErr, sErr float64
	for i := 50; i < len(est); i++ {
		fErr += math.Pow(est[i].CT()-truth, 2)
		sErr += math.Pow(sx[i].CT()-truth, 2)
	}
	assert.Less(sErr, fErr)
}
