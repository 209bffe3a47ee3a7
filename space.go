package autotune

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// candidateSpace is the materialized, enumerable form of a variable's
// legal values. For set and range descriptors it holds the concrete list
// to sample from; for unbounded descriptors it holds nothing and sampling
// is a pass-through.
type candidateSpace struct {
	values    []Value
	unbounded bool
}

func (s candidateSpace) size() int { return len(s.values) }

// contains reports whether v is one of the materialized values. Unbounded
// spaces accept any value.
func (s candidateSpace) contains(v Value) bool {
	if s.unbounded {
		return true
	}
	for _, c := range s.values {
		if c.Equal(v) {
			return true
		}
	}
	return false
}

// makeSpace materializes a candidate space from declared metadata.
//
// Explicit sets are taken as declared, in declared order. Ranges become
// the arithmetic sequence lower, lower+step, ... not exceeding upper,
// with an open bound first moved inward by one step. A space with nothing
// to sample from is refused at declaration time.
func makeSpace(d Descriptor) (candidateSpace, error) {
	switch d.Candidates {
	case CandidateUnbounded:
		return candidateSpace{unbounded: true}, nil

	case CandidateSet:
		if len(d.Set) == 0 {
			return candidateSpace{}, fmt.Errorf("%w: declared set has no values", ErrEmptyCandidateSpace)
		}
		for _, v := range d.Set {
			if v.Kind() != d.Kind {
				return candidateSpace{}, fmt.Errorf("%w: set value %s is %s, variable is %s",
					ErrKindMismatch, v, v.Kind(), d.Kind)
			}
		}
		values := make([]Value, len(d.Set))
		copy(values, d.Set)
		return candidateSpace{values: values}, nil

	case CandidateRange:
		var values []Value
		switch d.Kind {
		case KindInt64:
			r := d.Range
			for _, v := range makeRange(r.Lower.Int64(), r.Upper.Int64(), r.Step.Int64(), r.OpenLower, r.OpenUpper) {
				values = append(values, Int64Value(v))
			}
		case KindFloat64:
			r := d.Range
			for _, v := range makeRange(r.Lower.Float64(), r.Upper.Float64(), r.Step.Float64(), r.OpenLower, r.OpenUpper) {
				values = append(values, Float64Value(v))
			}
		default:
			return candidateSpace{}, fmt.Errorf("%w: range declared over %s values", ErrKindMismatch, d.Kind)
		}
		if len(values) == 0 {
			return candidateSpace{}, fmt.Errorf("%w: range %s contains no values after bound adjustment",
				ErrEmptyCandidateSpace, d.Range)
		}
		return candidateSpace{values: values}, nil

	default:
		return candidateSpace{}, fmt.Errorf("%w: unknown candidate kind %d", ErrEmptyCandidateSpace, d.Candidates)
	}
}

// makeRange generates the arithmetic sequence lower, lower+step, ... up to
// and including upper. Values are produced by repeated addition, never by
// division, so floating-point construction drifts by at most the usual
// accumulation error and never beyond the declared step.
//
// [ and ( denote whether a bound includes its endpoint: a closed bound
// keeps it, an open bound moves it inward by one step before generation.
func makeRange[T constraints.Integer | constraints.Float](lower, upper, step T, openLower, openUpper bool) []T {
	if step <= 0 {
		return nil
	}
	if openLower {
		lower += step
	}
	if openUpper {
		upper -= step
	}
	var out []T
	for v := lower; v <= upper; v += step {
		out = append(out, v)
	}
	return out
}

// String renders the range for error messages and the verbose trace.
func (r Range) String() string {
	return fmt.Sprintf("%s%s,%s%s step %s",
		bracket(r.OpenLower, "(", "["), r.Lower, r.Upper,
		bracket(r.OpenUpper, ")", "]"), r.Step)
}
