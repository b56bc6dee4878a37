package coretemp

import "fmt"

// Status describes the outcome of a filter update
type Status int

const (
	// StatusNominal means the observation was fused into the estimate
	StatusNominal Status = iota
	// StatusOutOfRange means the observation lies outside the model HR range
	StatusOutOfRange
	// StatusDegenerateInversion means the model could not be inverted at the observation
	StatusDegenerateInversion
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusNominal:
		return "nominal"
	case StatusOutOfRange:
		return "out-of-range"
	case StatusDegenerateInversion:
		return "degenerate-inversion"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// OK returns true if the status is nominal
func (s Status) OK() bool {
	return s == StatusNominal
}

// EventKind is a kind of filter diagnostic event
type EventKind int

const (
	// EventUpdate is emitted after every nominal update
	EventUpdate EventKind = iota
	// EventOutOfRange is emitted when an observation is rejected as out of range
	EventOutOfRange
	// EventDegenerateInversion is emitted when the model can't be inverted at the observation
	EventDegenerateInversion
	// EventDerivativeFloor is emitted when the model slope was clamped to its floor
	EventDerivativeFloor
	// EventGainClamp is emitted when the Kalman gain was clamped
	EventGainClamp
	// EventVarianceClamp is emitted when negative variance was clamped to zero
	EventVarianceClamp
)

var eventNames = map[EventKind]string{
	EventUpdate:              "update",
	EventOutOfRange:          "out-of-range",
	EventDegenerateInversion: "degenerate-inversion",
	EventDerivativeFloor:     "derivative-floor",
	EventGainClamp:           "gain-clamp",
	EventVarianceClamp:       "variance-clamp",
}

// String implements fmt.Stringer
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}

	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a filter diagnostic event
type Event struct {
	// Kind is event kind
	Kind EventKind
	// HR is the observed heart rate
	HR float64
	// CT is the core temperature estimate after the event
	CT float64
	// Variance is the estimate variance after the event
	Variance float64
	// Value carries the raw value involved in the event, e.g. unclamped gain
	Value float64
}
