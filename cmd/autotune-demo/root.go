package main

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tunelab/autotune"
)

var rootCmd = &cobra.Command{
	Use:   "autotune-demo",
	Short: "Synthetic workloads driven by the autotune engine",
	Long: `autotune-demo runs synthetic solver workloads whose runtime depends on
tunable parameters, and lets the engine search for the fastest settings.

Examples:
  autotune-demo smoother               # tune each solver's parameters
  autotune-demo smoother -e 500        # 500 episodes per solver
  autotune-demo fastest                # pick the fastest solver overall
  AUTOTUNE_VERBOSE=1 autotune-demo smoother   # trace every engine call`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().IntP("episodes", "e", 300, "measurement episodes per workload")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed (0 = from clock)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace engine operations")
	rootCmd.PersistentFlags().Bool("no-tuning", false, "disable sampling, run with defaults")

	_ = viper.BindPFlag("episodes", rootCmd.PersistentFlags().Lookup("episodes"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_tuning", rootCmd.PersistentFlags().Lookup("no-tuning"))

	rootCmd.AddCommand(smootherCmd)
	rootCmd.AddCommand(fastestCmd)
}

// initConfig wires AUTOTUNE_* environment variables to the same keys the
// flags bind, so AUTOTUNE_EPISODES=500 and --episodes 500 are equivalent.
func initConfig() {
	viper.SetEnvPrefix("AUTOTUNE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// newEngine builds the engine the demo commands share their options for.
func newEngine() *autotune.Engine {
	opts := []autotune.Option{autotune.WithLogger(newLogger())}
	if seed := viper.GetInt64("seed"); seed != 0 {
		opts = append(opts, autotune.WithSeed(seed))
	}
	if viper.GetBool("no_tuning") {
		opts = append(opts, autotune.WithTuningDisabled())
	}
	return autotune.New(opts...)
}

func newLogger() *log.Logger {
	level := log.WarnLevel
	if viper.GetBool("verbose") || os.Getenv("AUTOTUNE_VERBOSE") != "" {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "autotune-demo",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

func episodes() int {
	return viper.GetInt("episodes")
}
