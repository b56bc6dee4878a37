package ekf

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-coretemp/model"
	"github.com/milosgajdos/go-coretemp/window"
)

const (
	// DefaultInitialCT is the prior core temperature in degrees Celsius
	DefaultInitialCT = 37.0
	// DefaultInitialVariance is the prior core temperature variance
	DefaultInitialVariance = 0.02
	// DefaultProcessNoise is the variance added to the estimate between observations
	DefaultProcessNoise = 0.01
	// DefaultSensorNoise is the heart rate measurement noise variance
	DefaultSensorNoise = 0.02
)

// Config configures EKF
type Config struct {
	// InitialCT is the prior core temperature
	InitialCT float64 `mapstructure:"initialCT"`
	// InitialVariance is the prior variance
	InitialVariance float64 `mapstructure:"initialVariance"`
	// ProcessNoise is process noise variance
	ProcessNoise float64 `mapstructure:"processNoise"`
	// SensorNoise is measurement noise variance
	SensorNoise float64 `mapstructure:"sensorNoise"`
	// WindowSize is the capacity of the observation window
	WindowSize int `mapstructure:"windowSize"`
	// Sigmoid holds the HR model parameters
	Sigmoid model.Params `mapstructure:"sigmoidParams"`
}

// DefaultConfig returns default EKF configuration
func DefaultConfig() Config {
	return Config{
		InitialCT:       DefaultInitialCT,
		InitialVariance: DefaultInitialVariance,
		ProcessNoise:    DefaultProcessNoise,
		SensorNoise:     DefaultSensorNoise,
		WindowSize:      window.DefaultSize,
		Sigmoid:         model.DefaultParams(),
	}
}

// Validate returns error if c is not a valid configuration
func (c Config) Validate() error {
	if math.IsNaN(c.InitialCT) || math.IsInf(c.InitialCT, 0) {
		return fmt.Errorf("invalid initial core temperature: %v", c.InitialCT)
	}

	for _, param := range []struct {
		name string
		val  float64
	}{
		{"initial variance", c.InitialVariance},
		{"process noise", c.ProcessNoise},
		{"sensor noise", c.SensorNoise},
	} {
		if math.IsNaN(param.val) || math.IsInf(param.val, 0) || param.val < 0 {
			return fmt.Errorf("invalid %s: %v", param.name, param.val)
		}
	}

	if c.WindowSize <= 0 {
		return fmt.Errorf("invalid window size: %d", c.WindowSize)
	}

	if err := c.Sigmoid.Validate(); err != nil {
		return fmt.Errorf("invalid sigmoid parameters: %w", err)
	}

	return nil
}
