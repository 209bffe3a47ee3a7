package autotune

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record builds N alternatives that append their index to calls.
func recordingAlternatives(n int, calls *[]int) []Alternative {
	alts := make([]Alternative, n)
	for i := 0; i < n; i++ {
		i := i
		alts[i] = func() { *calls = append(*calls, i) }
	}
	return alts
}

func TestFastestOfNoAlternatives(t *testing.T) {
	s := NewSelector(newTestEngine(t, nil))
	assert.ErrorIs(t, s.FastestOf("empty"), ErrNoAlternatives)
}

// With tuning disabled the engine returns the -1 default, so every call
// falls back to round-robin: indices cycle 0,1,...,N-1 and each
// alternative runs either ⌊k/N⌋ or ⌈k/N⌉ times.
func TestFastestOfRoundRobinFallback(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(t, clock, WithTuningDisabled())
	s := NewSelector(e)

	const n, k = 3, 11
	var calls []int
	alts := recordingAlternatives(n, &calls)

	for i := 0; i < k; i++ {
		require.NoError(t, s.FastestOf("meta-smoother", alts...))
	}

	require.Len(t, calls, k)
	counts := make(map[int]int)
	for i, idx := range calls {
		assert.Equal(t, i%n, idx, "call %d broke the cycle", i)
		counts[idx]++
	}
	for i := 0; i < n; i++ {
		assert.Contains(t, []int{k / n, k/n + 1}, counts[i])
	}
}

func TestFastestOfSelectionStaysInRange(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(t, clock)
	s := NewSelector(e)

	const n = 3
	var calls []int
	alts := recordingAlternatives(n, &calls)

	for i := 0; i < 50; i++ {
		require.NoError(t, s.FastestOf("meta-smoother", alts...))
	}

	require.Len(t, calls, 50)
	for _, idx := range calls {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, n)
	}

	// One selection variable was declared over [0, n) and saw an episode
	// per invocation.
	rep := e.Finalize()
	require.Len(t, rep.Best, 1)
	assert.Equal(t, VariableID("fastest_of/meta-smoother"), rep.Best[0].ID)
	assert.Equal(t, uint64(50), rep.Best[0].Episodes)
	best := rep.Best[0].Value.Int64()
	assert.GreaterOrEqual(t, best, int64(0))
	assert.Less(t, best, int64(n))
}

// The selection is judged by the whole alternative's runtime, including
// nested tuning the alternative performs itself.
func TestFastestOfAttributesAlternativeRuntime(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(t, clock)
	s := NewSelector(e)

	slow := func() { clock.advance(10 * time.Millisecond) }
	fast := func() { clock.advance(1 * time.Millisecond) }

	for i := 0; i < 100; i++ {
		require.NoError(t, s.FastestOf("impl", slow, fast))
	}

	rep := e.Finalize()
	require.Len(t, rep.Best, 1)
	// 100 draws over two alternatives: both ran, and the fast one's
	// 1ms episode is the recorded best.
	assert.Equal(t, int64(1), rep.Best[0].Value.Int64())
	assert.Equal(t, time.Millisecond, rep.Best[0].Elapsed)
}

func TestFastestOfCursorIsPerLabel(t *testing.T) {
	e := newTestEngine(t, newFakeClock(), WithTuningDisabled())
	s := NewSelector(e)

	var a, b []int
	altsA := recordingAlternatives(2, &a)
	altsB := recordingAlternatives(3, &b)

	require.NoError(t, s.FastestOf("a", altsA...))
	require.NoError(t, s.FastestOf("b", altsB...))
	require.NoError(t, s.FastestOf("a", altsA...))
	require.NoError(t, s.FastestOf("b", altsB...))

	assert.Equal(t, []int{0, 1}, a)
	assert.Equal(t, []int{0, 1}, b)
}

func TestFastestOfAlternativeCountMustNotChange(t *testing.T) {
	e := newTestEngine(t, newFakeClock())
	s := NewSelector(e)

	var calls []int
	require.NoError(t, s.FastestOf("x", recordingAlternatives(2, &calls)...))
	err := s.FastestOf("x", recordingAlternatives(3, &calls)...)
	assert.ErrorIs(t, err, ErrAlternativeCount)
}

func TestFastestOfDeclaresCallSiteInput(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(t, clock)
	s := NewSelector(e)

	var calls []int
	require.NoError(t, s.FastestOf("impl", recordingAlternatives(2, &calls)...))

	e.mu.Lock()
	v, ok := e.vars[selectorInputID]
	e.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, Input, v.role)
	assert.Equal(t, StringValue("impl"), v.lastValue)
}
