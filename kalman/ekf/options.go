package ekf

import (
	coretemp "github.com/milosgajdos/go-coretemp"
	"go.uber.org/zap"
)

// Options are EKF options
type Options struct {
	Logger     *zap.Logger
	Observer   func(coretemp.Event)
	WindowSize int
}

// Option is functional EKF option
type Option func(*Options)

// WithLogger sets the logger EKF reports diagnostic events to at debug level
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithObserver registers fn to receive EKF diagnostic events.
// fn is called synchronously from Update.
func WithObserver(fn func(coretemp.Event)) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

// WithWindowSize sets the capacity of the observation window
func WithWindowSize(n int) Option {
	return func(o *Options) {
		o.WindowSize = n
	}
}
