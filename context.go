package autotune

import "time"

// measurement is one open tuning context: a timed episode binding a set
// of input and output variable ids. It holds ids, not variables; the
// engine's registry stays the single owner of variable state.
//
// A measurement has no parent or children. Nesting is purely a caller
// discipline (open the inner context before closing the outer one) and
// shows up only as two entries coexisting in the registry; nothing here
// validates it. Durations of nested episodes double-count: the outer
// measurement includes the inner one's time.
type measurement struct {
	id ContextID

	inputs  []VariableID
	outputs []VariableID

	// started flips when RequestValues binds the variables and starts
	// the timer. Exactly one request is accepted per context.
	started bool
	start   time.Time
}

func newMeasurement(id ContextID) *measurement {
	return &measurement{id: id}
}

// bindInputs records the descriptive variables attached to this episode.
func (m *measurement) bindInputs(ids []VariableID) {
	m.inputs = append(m.inputs, ids...)
}

// bindOutputs records the tunable variables attached to this episode.
func (m *measurement) bindOutputs(ids []VariableID) {
	m.outputs = append(m.outputs, ids...)
}

// startTimer marks the episode as running. The elapsed time reported at
// close is measured from this instant, wall-clock, at the resolution of
// the engine's clock (nanoseconds with the default clock).
func (m *measurement) startTimer(now time.Time) {
	m.started = true
	m.start = now
}

// elapsed returns the episode duration, or zero if the timer never
// started (a context closed without a request binds no outputs, so there
// is nothing to attribute the time to).
func (m *measurement) elapsed(now time.Time) time.Duration {
	if !m.started {
		return 0
	}
	return now.Sub(m.start)
}
