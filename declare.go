package autotune

//////
// Declaration helpers.
//
// Thin wrappers over Declare for the shapes harnesses declare all the
// time. Nothing here does anything Declare cannot; they exist so a demo
// or instrumented loop reads as one line per variable.
//////

// DeclareOutputInt64Range declares a tunable over the closed integer
// range [lower, upper] with the given step.
func (e *Engine) DeclareOutputInt64Range(id VariableID, name string, lower, upper, step int64) error {
	return e.Declare(id, name, Output, RangeDescriptor(KindInt64, Ordinal, Range{
		Lower: Int64Value(lower),
		Upper: Int64Value(upper),
		Step:  Int64Value(step),
	}))
}

// DeclareOutputFloat64Range declares a tunable over a floating-point
// range discretized by step, with per-bound open/closed control.
func (e *Engine) DeclareOutputFloat64Range(id VariableID, name string, lower, upper, step float64, openLower, openUpper bool) error {
	return e.Declare(id, name, Output, RangeDescriptor(KindFloat64, Interval, Range{
		Lower:     Float64Value(lower),
		Upper:     Float64Value(upper),
		Step:      Float64Value(step),
		OpenLower: openLower,
		OpenUpper: openUpper,
	}))
}

// DeclareOutputInt64Set declares a categorical tunable over an explicit
// list of integers, in the given order.
func (e *Engine) DeclareOutputInt64Set(id VariableID, name string, values ...int64) error {
	set := make([]Value, len(values))
	for i, v := range values {
		set[i] = Int64Value(v)
	}
	return e.Declare(id, name, Output, SetDescriptor(KindInt64, Categorical, set...))
}

// DeclareOutputTileSize declares a tunable over the factors of size, the
// usual candidate set for a tiling dimension.
func (e *Engine) DeclareOutputTileSize(id VariableID, name string, size int64) error {
	return e.DeclareOutputInt64Set(id, name, FactorsOf(size)...)
}

// DeclareInputInt64 declares a descriptive input fixed to a single value,
// enough to make a search context unique.
func (e *Engine) DeclareInputInt64(id VariableID, name string, value int64) error {
	return e.Declare(id, name, Input, SetDescriptor(KindInt64, Ordinal, Int64Value(value)))
}

// DeclareInputString declares a free-form descriptive input (a kernel or
// region name, say) whose observed values are summarized, never sampled.
func (e *Engine) DeclareInputString(id VariableID, name string) error {
	return e.Declare(id, name, Input, UnboundedDescriptor(KindString, Categorical))
}

// FactorsOf returns the divisors of size in increasing order.
func FactorsOf(size int64) []int64 {
	var factors []int64
	for i := int64(1); i <= size; i++ {
		if size%i == 0 {
			factors = append(factors, i)
		}
	}
	return factors
}
