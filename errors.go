package autotune

import "errors"

// Engine errors. Every error reported by the engine wraps one of these
// sentinels, so callers can classify failures with errors.Is. All of them
// indicate a broken harness contract rather than a recoverable condition;
// there is no retry path inside the engine.
var (
	// ErrUnknownVariable is returned when a request or report references a
	// variable id that was never declared.
	ErrUnknownVariable = errors.New("unknown variable id")

	// ErrUnknownContext is returned when RequestValues or EndContext
	// references a context id that is not currently open.
	ErrUnknownContext = errors.New("unknown context id")

	// ErrContextOpen is returned by BeginContext when the id is already
	// open. Ids may be reused, but only after the previous episode closed.
	ErrContextOpen = errors.New("context id already open")

	// ErrValuesRequested is returned when RequestValues is called more
	// than once for the same open context.
	ErrValuesRequested = errors.New("values already requested for context")

	// ErrEmptyCandidateSpace is returned at declaration time when an
	// explicit set is empty or a range contains no values after its open
	// bounds are adjusted inward.
	ErrEmptyCandidateSpace = errors.New("empty candidate space")

	// ErrKindMismatch is returned when a bound value's kind does not match
	// the declared kind of its variable.
	ErrKindMismatch = errors.New("value kind mismatch")

	// ErrNotOutput is returned when an output request names a variable
	// declared with the input role.
	ErrNotOutput = errors.New("variable is not an output")

	// ErrAlternativeCount is returned by the selection helper when a label
	// is reused with a different number of alternatives.
	ErrAlternativeCount = errors.New("alternative count changed for label")

	// ErrNoAlternatives is returned by the selection helper when it is
	// invoked with an empty alternative list.
	ErrNoAlternatives = errors.New("no alternatives supplied")
)
