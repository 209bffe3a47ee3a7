package autotune

import (
	"fmt"
	"strconv"
	"strings"
)

//////
// Identifiers.
//////

// VariableID uniquely identifies a declared tuning variable. IDs are
// caller-supplied and stable for the lifetime of the engine; redeclaring
// an existing ID overwrites the previous variable (last write wins).
type VariableID string

// ContextID identifies one open measurement context. A ContextID is only
// unique while the context is open; once the context is closed the same ID
// may be reused for an unrelated episode.
type ContextID uint64

//////
// Value kinds and roles.
//////

// ValueKind indicates the concrete type a variable's values carry.
type ValueKind int

const (
	KindInt64 ValueKind = iota
	KindFloat64
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "unknown type"
	}
}

// StatisticalRole describes the measurement semantics of a variable, in
// the usual categorical/ordinal/interval/ratio taxonomy. It is carried as
// declared metadata and reported back to the caller; the sampling policy
// does not branch on it.
type StatisticalRole int

const (
	Categorical StatisticalRole = iota
	Ordinal
	Interval
	Ratio
)

func (r StatisticalRole) String() string {
	switch r {
	case Categorical:
		return "categorical"
	case Ordinal:
		return "ordinal"
	case Interval:
		return "interval"
	case Ratio:
		return "ratio"
	default:
		return "unknown category"
	}
}

// CandidateKind describes how a variable's legal values are declared.
type CandidateKind int

const (
	// CandidateSet declares an explicit, ordered list of legal values.
	CandidateSet CandidateKind = iota

	// CandidateRange declares a bounded numeric range with a step and
	// independent open/closed flags per bound.
	CandidateRange

	// CandidateUnbounded declares that the legal values are not known in
	// advance. Unbounded variables are never sampled; observed values are
	// summarized with adaptive bins instead.
	CandidateUnbounded
)

func (c CandidateKind) String() string {
	switch c {
	case CandidateSet:
		return "set"
	case CandidateRange:
		return "range"
	case CandidateUnbounded:
		return "unbounded"
	default:
		return "unknown candidate type"
	}
}

// Role indicates whether a variable is an input (descriptive context,
// never sampled) or an output (tunable, assigned a candidate value on
// every request).
type Role int

const (
	Input Role = iota
	Output
)

func (r Role) String() string {
	if r == Output {
		return "output"
	}
	return "input"
}

//////
// Values.
//////

// Value is a tagged union holding one int64, float64, or string. The zero
// Value is an int64 zero. Accessors for the wrong kind return the zero of
// the requested type rather than panicking; callers that care use Kind.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

// Int64Value returns a Value holding v.
func Int64Value(v int64) Value { return Value{kind: KindInt64, i: v} }

// Float64Value returns a Value holding v.
func Float64Value(v float64) Value { return Value{kind: KindFloat64, f: v} }

// StringValue returns a Value holding v.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the kind of value held.
func (v Value) Kind() ValueKind { return v.kind }

// Int64 returns the held int64, or 0 if the kind differs.
func (v Value) Int64() int64 {
	if v.kind != KindInt64 {
		return 0
	}
	return v.i
}

// Float64 returns the held float64, or 0 if the kind differs.
func (v Value) Float64() float64 {
	if v.kind != KindFloat64 {
		return 0
	}
	return v.f
}

// Text returns the held string, or "" if the kind differs.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool { return v == o }

// String renders the payload for logs and reports.
func (v Value) String() string {
	switch v.kind {
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	default:
		return strconv.FormatInt(v.i, 10)
	}
}

// asFloat converts a numeric value to float64 for bin classification.
// The second result is false for string values, which are never binned.
func (v Value) asFloat() (float64, bool) {
	switch v.kind {
	case KindInt64:
		return float64(v.i), true
	case KindFloat64:
		return v.f, true
	default:
		return 0, false
	}
}

//////
// Descriptors.
//////

// Range describes a bounded numeric candidate range. Lower, Upper, and
// Step must share the variable's value kind. An open bound excludes its
// endpoint: the materialized space moves the endpoint inward by one step.
type Range struct {
	Lower Value
	Upper Value
	Step  Value

	OpenLower bool
	OpenUpper bool
}

// Descriptor is the declared metadata for a tuning variable: what type its
// values have, its statistical role, and how its candidate values are
// described. It is the only structured payload that crosses the engine
// boundary.
type Descriptor struct {
	// Kind is the concrete value type (int64, float64, or string).
	Kind ValueKind

	// Role is the statistical category of the variable.
	Role StatisticalRole

	// Candidates selects between Set, Range, and unbounded.
	Candidates CandidateKind

	// Set holds the explicit candidate list when Candidates is
	// CandidateSet. Order is preserved.
	Set []Value

	// Range holds the bounds when Candidates is CandidateRange.
	Range Range
}

// SetDescriptor builds a descriptor for an explicit candidate set.
func SetDescriptor(kind ValueKind, role StatisticalRole, values ...Value) Descriptor {
	return Descriptor{Kind: kind, Role: role, Candidates: CandidateSet, Set: values}
}

// RangeDescriptor builds a descriptor for a bounded numeric range.
func RangeDescriptor(kind ValueKind, role StatisticalRole, r Range) Descriptor {
	return Descriptor{Kind: kind, Role: role, Candidates: CandidateRange, Range: r}
}

// UnboundedDescriptor builds a descriptor for a variable whose legal
// values are not known in advance.
func UnboundedDescriptor(kind ValueKind, role StatisticalRole) Descriptor {
	return Descriptor{Kind: kind, Role: role, Candidates: CandidateUnbounded}
}

// String renders the descriptor for the verbose trace.
func (d Descriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "type=%s category=%s candidates=%s", d.Kind, d.Role, d.Candidates)
	switch d.Candidates {
	case CandidateSet:
		b.WriteString(" [")
		for i, v := range d.Set {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(v.String())
		}
		b.WriteByte(']')
	case CandidateRange:
		fmt.Fprintf(&b, " %s%s,%s%s step=%s",
			bracket(d.Range.OpenLower, "(", "["),
			d.Range.Lower, d.Range.Upper,
			bracket(d.Range.OpenUpper, ")", "]"),
			d.Range.Step)
	}
	return b.String()
}

func bracket(open bool, o, c string) string {
	if open {
		return o
	}
	return c
}

//////
// Boundary payloads.
//////

// InputValue binds a declared input variable to its current value for one
// measurement context.
type InputValue struct {
	ID    VariableID
	Value Value
}

// OutputRequest asks the engine to pick a value for a declared output
// variable. Default is the harness-provided starting value; it is returned
// unchanged when the variable is unbounded or when tuning is disabled.
type OutputRequest struct {
	ID      VariableID
	Default Value
}
