package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tunelab/autotune"
)

var fastestCmd = &cobra.Command{
	Use:   "fastest",
	Short: "Let the engine pick the fastest smoother implementation",
	Long: `fastest layers a selection variable over the three smoothers: each
episode the engine (or, without history, a round-robin cursor) picks one
implementation, runs it, and attributes the whole run to the choice. Each
implementation still tunes its own parameters in a nested context, so the
outer timing includes the inner tuning work.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		logger := newLogger()

		if err := engine.DeclareInputString("kernel", "kernel_name"); err != nil {
			return err
		}
		for _, s := range smoothers() {
			if err := s.declare(engine); err != nil {
				return err
			}
		}

		selector := autotune.NewSelector(engine)
		alternatives := make([]autotune.Alternative, 0, 3)
		for _, s := range smoothers() {
			s := s
			alternatives = append(alternatives, func() {
				if err := s.episode(engine); err != nil {
					logger.Error("episode failed", "smoother", s.name, "err", err)
				}
			})
		}

		n := episodes()
		logger.Info("selecting fastest smoother", "episodes", n)
		start := time.Now()
		for i := 0; i < n; i++ {
			if err := selector.FastestOf("meta-smoother", alternatives...); err != nil {
				return fmt.Errorf("episode %d: %w", i, err)
			}
		}

		logger.Info("done",
			"episodes", humanize.Comma(int64(n)),
			"elapsed", time.Since(start).Round(time.Millisecond))
		printReport(engine.Finalize())
		return nil
	},
}

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true)
	reportBodyStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
)

// printReport renders the finalize report to stdout.
func printReport(rep autotune.Report) {
	if rep.Empty() {
		fmt.Fprintln(os.Stdout, reportBodyStyle.Render("No variables tuned!"))
		return
	}
	body := reportTitleStyle.Render("Best values found") + "\n"
	for _, best := range rep.Best {
		if best.Episodes == 0 {
			body += fmt.Sprintf("%s: never measured\n", best.Name)
			continue
		}
		body += fmt.Sprintf("%s: %s (%v over %s episodes)\n",
			best.Name, best.Value, best.Elapsed, humanize.Comma(int64(best.Episodes)))
	}
	for _, obs := range rep.Observed {
		body += fmt.Sprintf("%s: %d bins\n", obs.Name, len(obs.Bins))
	}
	fmt.Fprintln(os.Stdout, reportBodyStyle.Render(body))
}
