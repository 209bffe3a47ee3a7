package autotune

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Engine is the tuning facade: it owns the variable registry, the open
// contexts, the random source, and the trace logger. Construct one with
// New and pass it to every call site; there is no process-global engine.
//
// All operations are synchronous and complete in time bounded by the
// number of variables bound to the call. Registry access is guarded by a
// single engine-wide mutex, so an Engine is safe for concurrent use by
// multiple goroutines. Ordering within one context id (begin, one
// request, end) is still the caller's responsibility.
type Engine struct {
	mu sync.Mutex

	rng      *rand.Rand
	now      func() time.Time
	logger   *log.Logger
	disabled bool

	vars     map[VariableID]*variable
	contexts map[ContextID]*measurement

	// nextContext backs NewContextID. Guarded by mu like everything else.
	nextContext ContextID
}

// New constructs an Engine. By default it seeds the random source from
// the wall clock, uses time.Now as its timer, and traces to stderr only
// when AUTOTUNE_VERBOSE is set.
func New(opts ...Option) *Engine {
	e := &Engine{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		logger:   defaultLogger(),
		vars:     make(map[VariableID]*variable),
		contexts: make(map[ContextID]*measurement),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Declare registers a tuning variable: its candidate space is
// materialized here, and an empty space is refused immediately rather
// than at the first sample. Redeclaring an existing id overwrites the
// previous variable, dropping its history; the overwrite is logged as a
// warning because it usually signals a harness bug.
func (e *Engine) Declare(id VariableID, name string, role Role, desc Descriptor) error {
	v, err := newVariable(id, name, role, desc)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.vars[id]; exists {
		e.logger.Warn("redeclaring variable, previous history dropped", "id", id, "name", name)
	}
	e.vars[id] = v
	e.logger.Debug("declared", "id", id, "variable", v.String())
	return nil
}

// NewContextID hands out a fresh context id. Purely a convenience: ids
// are caller-chosen, and closed ids may be reused.
func (e *Engine) NewContextID() ContextID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextContext++
	return e.nextContext
}

// BeginContext opens a measurement context. Multiple contexts may be open
// at once; the registry is a flat keyed store and does not order or
// validate nesting.
func (e *Engine) BeginContext(id ContextID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, open := e.contexts[id]; open {
		return fmt.Errorf("%w: %d", ErrContextOpen, id)
	}
	e.contexts[id] = newMeasurement(id)
	e.logger.Debug("begin context", "context", id)
	return nil
}

// RequestValues binds the given input and output variables to the context
// and returns one value per output request, in request order. Set and
// range outputs get a candidate drawn uniformly at random from their
// materialized space; unbounded outputs keep their harness default. The
// episode timer starts when this call returns, and exactly one request is
// accepted per context.
//
// When the engine was built with WithTuningDisabled every output keeps
// its default, which is how a harness runs untuned with the same code
// path (and how the selection helper's round-robin fallback is reached).
func (e *Engine) RequestValues(id ContextID, inputs []InputValue, outputs []OutputRequest) ([]Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, open := e.contexts[id]
	if !open {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContext, id)
	}
	if m.started {
		return nil, fmt.Errorf("%w: %d", ErrValuesRequested, id)
	}

	// Validate every binding before mutating anything, so a bad id or a
	// mistyped value cannot leave the context half-bound.
	for _, in := range inputs {
		v, ok := e.vars[in.ID]
		if !ok {
			return nil, fmt.Errorf("%w: input %q", ErrUnknownVariable, in.ID)
		}
		if in.Value.Kind() != v.desc.Kind {
			return nil, fmt.Errorf("%w: input %q is %s, got %s",
				ErrKindMismatch, in.ID, v.desc.Kind, in.Value.Kind())
		}
	}
	for _, out := range outputs {
		v, ok := e.vars[out.ID]
		if !ok {
			return nil, fmt.Errorf("%w: output %q", ErrUnknownVariable, out.ID)
		}
		if v.role != Output {
			return nil, fmt.Errorf("%w: %q declared as input", ErrNotOutput, out.ID)
		}
		if (v.space.unbounded || e.disabled) && out.Default.Kind() != v.desc.Kind {
			return nil, fmt.Errorf("%w: default for %q is %s, variable is %s",
				ErrKindMismatch, out.ID, out.Default.Kind(), v.desc.Kind)
		}
	}

	inputIDs := make([]VariableID, 0, len(inputs))
	for _, in := range inputs {
		v := e.vars[in.ID]
		bin := v.observe(in.Value)
		inputIDs = append(inputIDs, in.ID)
		e.logger.Debug("bound input", "context", id, "id", in.ID, "value", in.Value, "bin", bin)
	}
	m.bindInputs(inputIDs)

	outputIDs := make([]VariableID, 0, len(outputs))
	values := make([]Value, 0, len(outputs))
	for _, out := range outputs {
		v := e.vars[out.ID]
		var picked Value
		if e.disabled {
			picked = out.Default
			v.lastValue = picked
		} else {
			picked = v.assign(e.rng, out.Default)
		}
		outputIDs = append(outputIDs, out.ID)
		values = append(values, picked)
		e.logger.Debug("assigned output", "context", id, "id", out.ID, "value", picked)
	}
	m.bindOutputs(outputIDs)

	m.startTimer(e.now())
	return values, nil
}

// EndContext stops the episode timer, folds the elapsed wall-clock
// duration into the best bookkeeping of every output variable the context
// bound, and removes the context from the registry. The id becomes free
// for reuse. The measured duration is returned for callers that want to
// trace it.
func (e *Engine) EndContext(id ContextID) (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, open := e.contexts[id]
	if !open {
		return 0, fmt.Errorf("%w: %d", ErrUnknownContext, id)
	}
	elapsed := m.elapsed(e.now())
	for _, vid := range m.outputs {
		// Bound ids were validated at request time and variables are
		// never removed, so the lookup cannot miss.
		e.vars[vid].updateBest(elapsed)
	}
	delete(e.contexts, id)
	e.logger.Debug("end context", "context", id, "elapsed", elapsed, "outputs", len(m.outputs))
	return elapsed, nil
}

// Measure runs fn inside a freshly opened context and guarantees the
// context closes on every exit path, including errors and panics from fn.
// It is the preferred way to instrument a code region: a context opened
// by hand and never closed leaks its registry entry forever.
//
// fn receives the assigned output values in request order.
func (e *Engine) Measure(inputs []InputValue, outputs []OutputRequest, fn func(values []Value) error) (err error) {
	id := e.NewContextID()
	if err := e.BeginContext(id); err != nil {
		return err
	}
	defer func() {
		if _, endErr := e.EndContext(id); endErr != nil && err == nil {
			err = endErr
		}
	}()

	values, err := e.RequestValues(id, inputs, outputs)
	if err != nil {
		return err
	}
	return fn(values)
}

// Finalize reports, for every declared output variable, the best value
// ever observed and the elapsed time that produced it. Input-only
// variables do not report a best; unbounded variables that accumulated
// bins contribute an observational summary instead. Finalize never fails:
// with nothing declared it returns a report that says so.
func (e *Engine) Finalize() Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	return buildReport(e.vars)
}
