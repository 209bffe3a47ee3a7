package autotune

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// VariableBest is the per-output-variable result of a tuning run: the
// candidate value that produced the shortest measured episode, and that
// episode's elapsed time.
type VariableBest struct {
	ID       VariableID
	Name     string
	Value    Value
	Elapsed  time.Duration
	Episodes uint64
}

// BinSummary is a reportable snapshot of one adaptive bin.
type BinSummary struct {
	Name  string
	Min   float64
	Mean  float64
	Max   float64
	Count uint64
}

// ObservedVariable summarizes an unbounded variable's observations. These
// are descriptive only; unbounded variables have no best value.
type ObservedVariable struct {
	ID   VariableID
	Name string
	Bins []BinSummary
}

// Report is what Finalize returns: best values for every declared output
// variable, plus bin summaries for unbounded variables that accumulated
// observations. Entries are sorted by variable id for stable output.
type Report struct {
	Best     []VariableBest
	Observed []ObservedVariable
}

// Empty reports whether nothing was declared for tuning.
func (r Report) Empty() bool {
	return len(r.Best) == 0 && len(r.Observed) == 0
}

func buildReport(vars map[VariableID]*variable) Report {
	var r Report
	for _, v := range vars {
		if v.role == Output {
			r.Best = append(r.Best, VariableBest{
				ID:       v.id,
				Name:     v.name,
				Value:    v.bestValue,
				Elapsed:  v.bestTime,
				Episodes: v.episodes,
			})
		}
		if v.space.unbounded && len(v.bins) > 0 {
			ov := ObservedVariable{ID: v.id, Name: v.name}
			for _, b := range v.bins {
				ov.Bins = append(ov.Bins, BinSummary{
					Name: b.Name, Min: b.Min, Mean: b.Mean, Max: b.Max, Count: b.Count,
				})
			}
			r.Observed = append(r.Observed, ov)
		}
	}
	sort.Slice(r.Best, func(i, j int) bool { return r.Best[i].ID < r.Best[j].ID })
	sort.Slice(r.Observed, func(i, j int) bool { return r.Observed[i].ID < r.Observed[j].ID })
	return r
}

const reportBanner = "********************************************************************************"

// String renders the human-readable report.
func (r Report) String() string {
	var b strings.Builder
	if r.Empty() {
		b.WriteString(reportBanner + "\n")
		b.WriteString("No variables tuned!\n")
		b.WriteString(reportBanner + "\n")
		return b.String()
	}

	b.WriteString("Best values found:\n")
	b.WriteString(reportBanner + "\n")
	for _, best := range r.Best {
		if best.Episodes == 0 {
			fmt.Fprintf(&b, "Variable %s: never measured\n", best.Name)
			continue
		}
		fmt.Fprintf(&b, "Best value for variable %s: %s (%v over %s episodes)\n",
			best.Name, best.Value, best.Elapsed, humanize.Comma(int64(best.Episodes)))
	}
	for _, obs := range r.Observed {
		fmt.Fprintf(&b, "Observed %s in %d bins:\n", obs.Name, len(obs.Bins))
		for _, bin := range obs.Bins {
			fmt.Fprintf(&b, "  %s: min=%.3f mean=%.3f max=%.3f count=%s\n",
				bin.Name, bin.Min, bin.Mean, bin.Max, humanize.Comma(int64(bin.Count)))
		}
	}
	b.WriteString(reportBanner + "\n")
	return b.String()
}
