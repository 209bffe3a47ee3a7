// Package autotune is an online, best-effort autotuning engine. An
// instrumented application declares typed, bounded tuning variables,
// opens timed measurement contexts, asks the engine to pick candidate
// values, runs its own workload, and closes the context; the engine
// remembers, across episodes, which candidate of each variable produced
// the shortest elapsed time.
//
// # Model
//
// Variables are declared once with a Descriptor: an explicit candidate
// set, a bounded numeric range with a step and open/closed bounds, or
// unbounded when the legal values are not known in advance. Set and range
// variables are sampled uniformly at random from their materialized
// space; unbounded variables are never sampled: their observed values
// pass through unchanged and are summarized with adaptive bins for
// reporting.
//
// A context is one timed episode. RequestValues binds input and output
// variables to it and starts the timer; EndContext stops the timer and
// folds the elapsed wall-clock duration into the best bookkeeping of
// every bound output. Finalize reports the best value ever observed per
// output variable.
//
// # Usage
//
//	engine := autotune.New(autotune.WithSeed(42))
//
//	_ = engine.DeclareOutputInt64Range("cheb.degree", "Chebyshev: Degree", 1, 6, 1)
//
//	for i := 0; i < 300; i++ {
//	    _ = engine.Measure(nil,
//	        []autotune.OutputRequest{{ID: "cheb.degree", Default: autotune.Int64Value(3)}},
//	        func(values []autotune.Value) error {
//	            runSolver(values[0].Int64())
//	            return nil
//	        })
//	}
//
//	fmt.Print(engine.Finalize())
//
// The Selector helper layers a "fastest of N implementations" choice on
// top of the same machinery, with a round-robin fallback when the engine
// has no preference.
//
// # Scope
//
// The engine is deliberately best-effort: the sampling policy is uniform
// random over the candidate space, with no convergence guarantee, no
// model of the objective, and no state persisted across process runs. It
// is a synchronous in-process library with no background work and no I/O
// beyond an optional verbose trace (gated by AUTOTUNE_VERBOSE or
// WithLogger).
// All engine state sits behind one mutex, so concurrent harness threads
// are safe; ordering within a single context id remains the caller's
// contract.
package autotune
