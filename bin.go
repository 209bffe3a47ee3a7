package autotune

import "fmt"

// Bin is one adaptive cluster of observed values for an unbounded
// variable. Bins approximate a histogram without predefined edges: the
// first bin whose interval or mean-tolerance band contains a new value
// absorbs it, otherwise a new bin is appended. This is a heuristic
// single-pass online clustering, not exact binning; it exists only to
// give unbounded variables a reportable summary and is never sampled
// from.
type Bin struct {
	// Name identifies the bin by its creation order ("bin_0", "bin_1", ...).
	Name string

	// Mean is the running mean of all absorbed values.
	Mean float64

	// Total is the running sum of all absorbed values.
	Total float64

	// Min and Max bound the absorbed values.
	Min float64
	Max float64

	// Count is the number of absorbed values.
	Count uint64
}

// binTolerance is the relative band around a bin's mean that still counts
// as membership: a value within [0.75*mean, 1.25*mean] is absorbed even
// when it falls outside the bin's observed [min, max].
const binTolerance = 0.25

// newBin seeds a bin with its first observation. idx is the bin's
// creation order within its variable.
func newBin(value float64, idx int) *Bin {
	return &Bin{
		Name:  fmt.Sprintf("bin_%d", idx),
		Mean:  value,
		Total: value,
		Min:   value,
		Max:   value,
		Count: 1,
	}
}

// contains reports whether value belongs to this bin: inside the observed
// [min, max] interval, or within the ±25% band around the mean.
func (b *Bin) contains(value float64) bool {
	if value <= b.Max && value >= b.Min {
		return true
	}
	if value <= b.Mean*(1+binTolerance) && value >= b.Mean*(1-binTolerance) {
		return true
	}
	return false
}

// absorb folds value into the bin's running statistics.
func (b *Bin) absorb(value float64) {
	b.Count++
	b.Total += value
	b.Mean = b.Total / float64(b.Count)
	if value < b.Min {
		b.Min = value
	}
	if value > b.Max {
		b.Max = value
	}
}
