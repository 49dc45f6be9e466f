package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/fwdiff/internal/config"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	// function selection
	preset     string
	scriptFile string
	width      string

	// evaluation
	at      float64
	from    float64
	to      float64
	samples int
	workers int
	points  []float64

	// check
	checkStep float64
	checkTol  float64

	// output
	asJSON     bool
	showPlot   bool
	outputFile string
	svgFile    string
	theme      string

	// explorer
	step float64
	span float64

	scriptTimeout time.Duration
)

// main registers commands and flags, then executes the root command.
// It exits with status 1 if the command returns an error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "fwdiff",
		Short:         "forward-mode automatic differentiation toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fwdiff", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level (debug, info, warn, error)")

	evalCmd := &cobra.Command{
		Use:   "eval [expr]",
		Short: "evaluate a function and its derivative at a point",
		Args:  cobra.MaximumNArgs(1),
		RunE:  evalFunction,
	}
	addFunctionFlags(evalCmd)
	evalCmd.Flags().Float64Var(&at, "at", 0, "evaluation point")
	evalCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep [expr]",
		Short: "evaluate over a grid and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepFunction,
	}
	addFunctionFlags(sweepCmd)
	addGridFlags(sweepCmd)
	sweepCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the result")

	checkCmd := &cobra.Command{
		Use:   "check [expr]",
		Short: "compare derivatives with central finite differences",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkFunction,
	}
	addFunctionFlags(checkCmd)
	addGridFlags(checkCmd)
	checkCmd.Flags().Float64SliceVar(&points, "points", nil, "explicit points (overrides the grid)")
	checkCmd.Flags().Float64Var(&checkStep, "h", config.DefaultCheckStep, "finite-difference step (0 = derived from width)")
	checkCmd.Flags().Float64Var(&checkTol, "tol", config.DefaultCheckTol, "tolerance (0 = derived from width)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the plot as SVG")
	plotCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "svg color theme")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list functions available in expressions and scripts",
		RunE:  listFunctions,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [expr]",
		Short: "interactive terminal explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  explore,
	}
	addFunctionFlags(exploreCmd)
	exploreCmd.Flags().Float64Var(&at, "at", 0, "starting point")
	exploreCmd.Flags().Float64Var(&step, "step", 0.1, "x increment per key press")
	exploreCmd.Flags().Float64Var(&span, "span", 3, "half width of the plotted window")

	rootCmd.AddCommand(evalCmd, sweepCmd, checkCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, functionsCmd, exploreCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func addFunctionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scriptFile, "script", "", "starlark file defining f(x)")
	cmd.Flags().StringVar(&width, "width", config.DefaultWidth, "scalar width (float64, float32)")
	cmd.Flags().DurationVar(&scriptTimeout, "script-timeout", 5*time.Second, "per-evaluation script timeout")
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&from, "from", config.DefaultFrom, "grid start")
	cmd.Flags().Float64Var(&to, "to", config.DefaultTo, "grid end")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of grid points")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
}

// setupLogging configures zerolog for human-readable output on stderr.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
