package noise

// None is noise with zero mean and zero variance.
type None struct{}

// NewNone creates new None noise and returns it
func NewNone() (*None, error) {
	return &None{}, nil
}

// Sample returns zero.
func (e *None) Sample() float64 {
	return 0.0
}

// Variance returns zero.
func (e *None) Variance() float64 {
	return 0.0
}

// Mean returns zero.
func (e *None) Mean() float64 {
	return 0.0
}

// Reset does nothing.
func (e *None) Reset() error {
	return nil
}

// String implements the Stringer interface.
func (e *None) String() string {
	return "None{}"
}
