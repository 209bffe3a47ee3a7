package autotune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSpaceExplicitSetKeepsOrder(t *testing.T) {
	desc := SetDescriptor(KindInt64, Categorical,
		Int64Value(8), Int64Value(2), Int64Value(32), Int64Value(1))

	space, err := makeSpace(desc)
	require.NoError(t, err)

	want := []Value{Int64Value(8), Int64Value(2), Int64Value(32), Int64Value(1)}
	assert.Equal(t, want, space.values)
	assert.False(t, space.unbounded)
}

func TestMakeSpaceClosedIntRange(t *testing.T) {
	desc := RangeDescriptor(KindInt64, Ordinal, Range{
		Lower: Int64Value(1),
		Upper: Int64Value(6),
		Step:  Int64Value(1),
	})

	space, err := makeSpace(desc)
	require.NoError(t, err)

	require.Equal(t, 6, space.size())
	for i, v := range space.values {
		assert.Equal(t, int64(i+1), v.Int64())
	}
}

func TestMakeSpaceOpenBoundsAdjustInwardByOneStep(t *testing.T) {
	desc := RangeDescriptor(KindInt64, Ordinal, Range{
		Lower:     Int64Value(0),
		Upper:     Int64Value(10),
		Step:      Int64Value(2),
		OpenLower: true,
		OpenUpper: true,
	})

	space, err := makeSpace(desc)
	require.NoError(t, err)

	// (0,10) step 2 adjusts to [2,8]: 2, 4, 6, 8.
	want := []Value{Int64Value(2), Int64Value(4), Int64Value(6), Int64Value(8)}
	assert.Equal(t, want, space.values)
}

func TestMakeSpaceHalfOpenUpperExcludesEndpoint(t *testing.T) {
	// [0, 3) step 1 is how the selection helper declares its variable.
	desc := RangeDescriptor(KindInt64, Categorical, Range{
		Lower:     Int64Value(0),
		Upper:     Int64Value(3),
		Step:      Int64Value(1),
		OpenUpper: true,
	})

	space, err := makeSpace(desc)
	require.NoError(t, err)
	assert.Equal(t, []Value{Int64Value(0), Int64Value(1), Int64Value(2)}, space.values)
}

func TestMakeSpaceFloatRangeByRepeatedAddition(t *testing.T) {
	desc := RangeDescriptor(KindFloat64, Interval, Range{
		Lower: Float64Value(10.0),
		Upper: Float64Value(50.0),
		Step:  Float64Value(0.1),
	})

	space, err := makeSpace(desc)
	require.NoError(t, err)

	// Accumulated floating error may shave the final value, but every
	// generated value stays within the declared bounds and successive
	// values differ by the declared step up to accumulation error.
	require.GreaterOrEqual(t, space.size(), 399)
	prev := space.values[0].Float64()
	assert.Equal(t, 10.0, prev)
	for _, v := range space.values[1:] {
		f := v.Float64()
		assert.GreaterOrEqual(t, f, 10.0)
		assert.LessOrEqual(t, f, 50.0)
		assert.InDelta(t, 0.1, f-prev, 1e-9)
		prev = f
	}
}

func TestMakeSpaceEmptyRangeIsError(t *testing.T) {
	// (5,6) step 1 adjusts to [6,5], which holds nothing.
	desc := RangeDescriptor(KindInt64, Ordinal, Range{
		Lower:     Int64Value(5),
		Upper:     Int64Value(6),
		Step:      Int64Value(1),
		OpenLower: true,
		OpenUpper: true,
	})

	_, err := makeSpace(desc)
	assert.ErrorIs(t, err, ErrEmptyCandidateSpace)
}

func TestMakeSpaceEmptySetIsError(t *testing.T) {
	_, err := makeSpace(SetDescriptor(KindInt64, Categorical))
	assert.ErrorIs(t, err, ErrEmptyCandidateSpace)
}

func TestMakeSpaceSetKindMismatchIsError(t *testing.T) {
	_, err := makeSpace(SetDescriptor(KindInt64, Categorical, StringValue("static")))
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestMakeSpaceStringRangeIsError(t *testing.T) {
	_, err := makeSpace(RangeDescriptor(KindString, Ordinal, Range{}))
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestMakeSpaceUnbounded(t *testing.T) {
	space, err := makeSpace(UnboundedDescriptor(KindString, Categorical))
	require.NoError(t, err)
	assert.True(t, space.unbounded)
	assert.Zero(t, space.size())
	assert.True(t, space.contains(StringValue("anything")))
}

func TestFactorsOf(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4, 6, 12}, FactorsOf(12))
	assert.Equal(t, []int64{1, 7}, FactorsOf(7))
	assert.Equal(t, []int64{1}, FactorsOf(1))
}
