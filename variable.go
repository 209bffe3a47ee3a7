package autotune

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"
)

// maxDuration marks a variable that has not completed an episode yet.
const maxDuration = time.Duration(math.MaxInt64)

// variable owns everything the engine tracks for one declared tuning
// variable: its declared metadata, the materialized candidate space (or
// the bin list for unbounded kinds), the value assigned in the most
// recent episode, and the best value and elapsed time observed so far.
type variable struct {
	id   VariableID
	name string
	hash uint64
	role Role
	desc Descriptor

	space candidateSpace

	// bins is only populated for unbounded variables. It summarizes the
	// observed values; it never feeds back into sampling.
	bins []*Bin

	lastValue Value
	bestValue Value
	bestTime  time.Duration

	// episodes counts closed contexts that bound this variable as output.
	episodes uint64
}

// newVariable materializes the candidate space and initializes the best
// bookkeeping. An empty space is refused here, at declaration time, so
// sampling never faces a space with nothing to draw from.
func newVariable(id VariableID, name string, role Role, desc Descriptor) (*variable, error) {
	space, err := makeSpace(desc)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", id, err)
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return &variable{
		id:       id,
		name:     name,
		hash:     h.Sum64(),
		role:     role,
		desc:     desc,
		space:    space,
		bestTime: maxDuration,
	}, nil
}

// assign picks the value for this episode and records it as the last
// assigned value.
//
// For set and range variables the draw is an index chosen uniformly at
// random over the materialized list, so every generated value is equally
// likely regardless of numeric spacing. Unbounded variables are never
// sampled: the harness default passes through unchanged and is only
// classified into a bin for reporting.
func (v *variable) assign(rng *rand.Rand, def Value) Value {
	if v.space.unbounded {
		v.observe(def)
		return def
	}
	pick := v.space.values[rng.Intn(v.space.size())]
	v.lastValue = pick
	return pick
}

// observe records a value seen for this variable. Numeric values of
// unbounded variables are folded into the first matching bin, or seed a
// new one; the returned name is the absorbing bin's, or "" when the value
// was not binned. Bounded variables and string values only update the
// last-seen value.
func (v *variable) observe(val Value) string {
	v.lastValue = val
	if !v.space.unbounded {
		return ""
	}
	x, ok := val.asFloat()
	if !ok {
		return ""
	}
	for _, b := range v.bins {
		if b.contains(x) {
			b.absorb(x)
			return b.Name
		}
	}
	b := newBin(x, len(v.bins))
	v.bins = append(v.bins, b)
	return b.Name
}

// updateBest is invoked once per closed context for every output variable
// it bound. A strictly shorter duration takes over the best slot; ties
// keep the earlier value, so the first episode to reach a given time wins
// and repeated equal timings are stable.
func (v *variable) updateBest(d time.Duration) {
	v.episodes++
	if d < v.bestTime {
		v.bestTime = d
		v.bestValue = v.lastValue
	}
}

// String dumps the variable for the verbose trace.
func (v *variable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variable %q id=%s hash=%016x role=%s %s", v.name, v.id, v.hash, v.role, v.desc)
	if v.space.unbounded && len(v.bins) > 0 {
		fmt.Fprintf(&b, " num_bins=%d", len(v.bins))
		for _, bin := range v.bins {
			fmt.Fprintf(&b, " %s{min=%.3f mean=%.3f max=%.3f count=%d}",
				bin.Name, bin.Min, bin.Mean, bin.Max, bin.Count)
		}
	}
	return b.String()
}
