// Package config loads core temperature estimator configuration
// from a config file and CORETEMP_ prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/milosgajdos/go-coretemp/kalman/ekf"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding config values,
// e.g. CORETEMP_SENSORNOISE or CORETEMP_SIGMOIDPARAMS_BETA.
const EnvPrefix = "CORETEMP"

// Config is application configuration
type Config struct {
	// Estimator configures the core temperature filter
	Estimator ekf.Config `mapstructure:",squash"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"logLevel"`
}

// Default returns default configuration
func Default() Config {
	return Config{
		Estimator: ekf.DefaultConfig(),
		LogLevel:  "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("initialCT", d.Estimator.InitialCT)
	v.SetDefault("initialVariance", d.Estimator.InitialVariance)
	v.SetDefault("processNoise", d.Estimator.ProcessNoise)
	v.SetDefault("sensorNoise", d.Estimator.SensorNoise)
	v.SetDefault("windowSize", d.Estimator.WindowSize)
	v.SetDefault("sigmoidParams.A", d.Estimator.Sigmoid.A)
	v.SetDefault("sigmoidParams.K", d.Estimator.Sigmoid.K)
	v.SetDefault("sigmoidParams.Q", d.Estimator.Sigmoid.Q)
	v.SetDefault("sigmoidParams.beta", d.Estimator.Sigmoid.Beta)
	v.SetDefault("sigmoidParams.M", d.Estimator.Sigmoid.M)
	v.SetDefault("sigmoidParams.v", d.Estimator.Sigmoid.V)
}

// Load reads configuration from the file at path and the environment and returns it.
// Empty path skips the file. Values missing from both fall back to defaults.
// It returns error if the file can't be read or the resulting configuration is invalid.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := c.Estimator.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
