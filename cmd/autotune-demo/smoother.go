package main

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tunelab/autotune"
)

// The three synthetic smoothers. Each one declares its own tunables and
// sleeps for a delay that bottoms out at the target settings, so the
// engine has a real (if artificial) timing signal to chase.
type smoother struct {
	name    string
	declare func(e *autotune.Engine) error
	episode func(e *autotune.Engine) error
}

func smoothers() []smoother {
	return []smoother{
		{
			name:    "Chebyshev",
			declare: declareChebyshev,
			episode: runChebyshev,
		},
		{
			name:    "Multi-threaded Gauss-Seidel",
			declare: declareMTGS,
			episode: runMTGS,
		},
		{
			name:    "Two-Stage Gauss-Seidel",
			declare: declareTSGS,
			episode: runTSGS,
		},
	}
}

func declareChebyshev(e *autotune.Engine) error {
	if err := e.DeclareOutputInt64Range("cheb.degree", "Chebyshev: Degree", 1, 6, 1); err != nil {
		return err
	}
	if err := e.DeclareOutputFloat64Range("cheb.eig_ratio", "Chebyshev: Eigenvalue Ratio", 10.0, 50.0, 0.1, false, false); err != nil {
		return err
	}
	return e.DeclareOutputInt64Range("cheb.max_iters", "Chebyshev: Maximum Iterations", 5, 100, 1)
}

// runChebyshev converges on degree 5, ratio 15, 75 iterations.
func runChebyshev(e *autotune.Engine) error {
	inputs := []autotune.InputValue{{ID: "kernel", Value: autotune.StringValue("Chebyshev")}}
	outputs := []autotune.OutputRequest{
		{ID: "cheb.degree", Default: autotune.Int64Value(3)},
		{ID: "cheb.eig_ratio", Default: autotune.Float64Value(25.0)},
		{ID: "cheb.max_iters", Default: autotune.Int64Value(50)},
	}
	return e.Measure(inputs, outputs, func(values []autotune.Value) error {
		delay := 1 +
			math.Abs(float64(5-values[0].Int64()))*750 +
			math.Abs(15.0-values[1].Float64())*25 +
			math.Abs(float64(75-values[2].Int64()))*10
		sleepMicros(delay)
		return nil
	})
}

func declareMTGS(e *autotune.Engine) error {
	if err := e.DeclareOutputInt64Range("mtgs.sweeps", "Multi-threaded Gauss-Seidel: Number of Sweeps", 1, 2, 1); err != nil {
		return err
	}
	return e.DeclareOutputFloat64Range("mtgs.damping", "Multi-threaded Gauss-Seidel: Damping Factor", 0.8, 1.2, 0.01, false, false)
}

// runMTGS converges on 1 sweep with damping 0.9.
func runMTGS(e *autotune.Engine) error {
	inputs := []autotune.InputValue{{ID: "kernel", Value: autotune.StringValue("Multi-threaded Gauss-Seidel")}}
	outputs := []autotune.OutputRequest{
		{ID: "mtgs.sweeps", Default: autotune.Int64Value(2)},
		{ID: "mtgs.damping", Default: autotune.Float64Value(1.0)},
	}
	return e.Measure(inputs, outputs, func(values []autotune.Value) error {
		delay := 1 +
			math.Abs(float64(1-values[0].Int64()))*100 +
			math.Abs(0.9-values[1].Float64())*100
		sleepMicros(delay)
		return nil
	})
}

func declareTSGS(e *autotune.Engine) error {
	if err := e.DeclareOutputInt64Range("tsgs.sweeps", "Two-Stage Gauss-Seidel: Number of Sweeps", 1, 2, 1); err != nil {
		return err
	}
	return e.DeclareOutputFloat64Range("tsgs.damping", "Two-Stage Gauss-Seidel: Inner Damping Factor", 0.8, 1.2, 0.01, false, false)
}

// runTSGS converges on 2 sweeps with inner damping 1.1.
func runTSGS(e *autotune.Engine) error {
	inputs := []autotune.InputValue{{ID: "kernel", Value: autotune.StringValue("Two-Stage Gauss-Seidel")}}
	outputs := []autotune.OutputRequest{
		{ID: "tsgs.sweeps", Default: autotune.Int64Value(2)},
		{ID: "tsgs.damping", Default: autotune.Float64Value(1.0)},
	}
	return e.Measure(inputs, outputs, func(values []autotune.Value) error {
		delay := 1 +
			math.Abs(float64(2-values[0].Int64()))*100 +
			math.Abs(1.1-values[1].Float64())*100
		sleepMicros(delay)
		return nil
	})
}

func sleepMicros(micros float64) {
	time.Sleep(time.Duration(micros * float64(time.Microsecond)))
}

var smootherCmd = &cobra.Command{
	Use:   "smoother",
	Short: "Tune each synthetic smoother's parameters independently",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		logger := newLogger()

		if err := engine.DeclareInputString("kernel", "kernel_name"); err != nil {
			return err
		}

		n := episodes()
		start := time.Now()
		for _, s := range smoothers() {
			if err := s.declare(engine); err != nil {
				return err
			}
			logger.Info("tuning", "smoother", s.name, "episodes", n)
			for i := 0; i < n; i++ {
				if err := s.episode(engine); err != nil {
					return fmt.Errorf("%s episode %d: %w", s.name, i, err)
				}
			}
		}

		logger.Info("done",
			"episodes", humanize.Comma(int64(3*n)),
			"elapsed", time.Since(start).Round(time.Millisecond))
		printReport(engine.Finalize())
		return nil
	},
}
