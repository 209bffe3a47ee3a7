package autotune

import (
	"fmt"
	"sync"
)

// Alternative is one zero-argument implementation competing under a
// FastestOf label. An alternative is free to open its own nested contexts
// for per-parameter tuning; their time is included in (not subtracted
// from) the selection's measurement.
type Alternative func()

// Selector layers a categorical choice of implementation on top of an
// Engine: each label gets one output variable selecting among its
// alternatives, judged by the same timing signal the per-parameter tuners
// use. The outer selection and any inner tuners are independent greedy
// best-trackers that share no information, so this is a convenience,
// not a joint-optimization guarantee.
type Selector struct {
	engine *Engine

	mu            sync.Mutex
	labels        map[string]*selection
	inputDeclared bool
}

// selection tracks one label: its declared variable and the round-robin
// cursor used when the engine expresses no preference.
type selection struct {
	id     VariableID
	count  int
	cursor int
}

// selectorInputID identifies the shared unbounded input naming the call
// site of every FastestOf invocation.
const selectorInputID VariableID = "fastest_implementation_of"

// NewSelector builds a Selector on top of an engine.
func NewSelector(e *Engine) *Selector {
	return &Selector{engine: e, labels: make(map[string]*selection)}
}

// FastestOf runs one of the alternatives registered under label and
// attributes its entire execution time to the selection variable.
//
// On first use for a label it declares a categorical output over the
// integer range [0, len(alts)) plus the shared call-site input. Each
// invocation opens a context, requests a selection with default -1, and:
//
//   - if the engine returns a valid index, invokes that alternative;
//   - if the selection is negative (tuning disabled, or no engine
//     preference), falls back to a per-label round-robin cursor so every
//     alternative is exercised evenly before any bias is possible.
//
// The number of alternatives for a label must not change between calls.
func (s *Selector) FastestOf(label string, alts ...Alternative) error {
	if len(alts) == 0 {
		return fmt.Errorf("%w: %q", ErrNoAlternatives, label)
	}
	sel, err := s.selection(label, len(alts))
	if err != nil {
		return err
	}

	inputs := []InputValue{{ID: selectorInputID, Value: StringValue(label)}}
	outputs := []OutputRequest{{ID: sel.id, Default: Int64Value(-1)}}

	return s.engine.Measure(inputs, outputs, func(values []Value) error {
		pick := values[0].Int64()
		if pick < 0 || pick >= int64(len(alts)) {
			pick = int64(s.advance(sel))
		}
		alts[pick]()
		return nil
	})
}

// selection returns the per-label state, declaring the variables on first
// use.
func (s *Selector) selection(label string, n int) (*selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inputDeclared {
		err := s.engine.Declare(selectorInputID, string(selectorInputID), Input,
			UnboundedDescriptor(KindString, Categorical))
		if err != nil {
			return nil, err
		}
		s.inputDeclared = true
	}

	if sel, ok := s.labels[label]; ok {
		if sel.count != n {
			return nil, fmt.Errorf("%w: %q had %d, now %d", ErrAlternativeCount, label, sel.count, n)
		}
		return sel, nil
	}

	id := VariableID("fastest_of/" + label)
	desc := RangeDescriptor(KindInt64, Categorical, Range{
		Lower:     Int64Value(0),
		Upper:     Int64Value(int64(n)),
		Step:      Int64Value(1),
		OpenUpper: true, // [0, n)
	})
	if err := s.engine.Declare(id, label, Output, desc); err != nil {
		return nil, err
	}

	sel := &selection{id: id, count: n}
	s.labels[label] = sel
	return sel, nil
}

// advance returns the label's round-robin cursor and steps it by one,
// mod the alternative count.
func (s *Selector) advance(sel *selection) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := sel.cursor
	sel.cursor = (c + 1) % sel.count
	return c
}
