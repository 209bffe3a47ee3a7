package autotune

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRangeVariable(t *testing.T) *variable {
	t.Helper()
	v, err := newVariable("deg", "Chebyshev: Degree", Output, RangeDescriptor(KindInt64, Ordinal, Range{
		Lower: Int64Value(1), Upper: Int64Value(6), Step: Int64Value(1),
	}))
	require.NoError(t, err)
	return v
}

func TestVariableStartsWithMaxBestTime(t *testing.T) {
	v := testRangeVariable(t)
	assert.Equal(t, maxDuration, v.bestTime)
	assert.Zero(t, v.episodes)
}

func TestAssignStaysInsideMaterializedSpace(t *testing.T) {
	v := testRangeVariable(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		got := v.assign(rng, Int64Value(3))
		assert.True(t, v.space.contains(got), "assigned %s outside space", got)
		assert.GreaterOrEqual(t, got.Int64(), int64(1))
		assert.LessOrEqual(t, got.Int64(), int64(6))
		assert.Equal(t, got, v.lastValue)
	}
}

func TestAssignIsReproducibleUnderFixedSeed(t *testing.T) {
	draw := func() []Value {
		v := testRangeVariable(t)
		rng := rand.New(rand.NewSource(42))
		out := make([]Value, 0, 100)
		for i := 0; i < 100; i++ {
			out = append(out, v.assign(rng, Int64Value(3)))
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestAssignUnboundedPassesDefaultThrough(t *testing.T) {
	v, err := newVariable("size", "problem size", Output, UnboundedDescriptor(KindInt64, Ratio))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	got := v.assign(rng, Int64Value(9000))
	assert.Equal(t, Int64Value(9000), got)
	assert.Equal(t, Int64Value(9000), v.lastValue)
	// The observed value is binned for reporting.
	require.Len(t, v.bins, 1)
	assert.Equal(t, uint64(1), v.bins[0].Count)
}

func TestUpdateBestIsMonotonicallyNonIncreasing(t *testing.T) {
	v := testRangeVariable(t)

	durations := []time.Duration{
		90 * time.Millisecond,
		40 * time.Millisecond,
		70 * time.Millisecond, // worse, ignored
		40 * time.Millisecond, // tie, ignored
		10 * time.Millisecond,
	}
	prev := v.bestTime
	for _, d := range durations {
		v.lastValue = Int64Value(int64(d / time.Millisecond))
		v.updateBest(d)
		assert.LessOrEqual(t, v.bestTime, prev)
		prev = v.bestTime
	}
	assert.Equal(t, 10*time.Millisecond, v.bestTime)
	assert.Equal(t, uint64(5), v.episodes)
}

func TestUpdateBestTieKeepsFirstValue(t *testing.T) {
	v := testRangeVariable(t)

	v.lastValue = Int64Value(5)
	v.updateBest(40 * time.Millisecond)
	v.lastValue = Int64Value(2)
	v.updateBest(40 * time.Millisecond)

	assert.Equal(t, Int64Value(5), v.bestValue)
	assert.Equal(t, 40*time.Millisecond, v.bestTime)
}
