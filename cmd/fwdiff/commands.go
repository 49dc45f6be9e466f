package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/fwdiff/internal/check"
	"github.com/san-kum/fwdiff/internal/config"
	"github.com/san-kum/fwdiff/internal/expr"
	"github.com/san-kum/fwdiff/internal/storage"
	"github.com/san-kum/fwdiff/internal/sweep"
	"github.com/san-kum/fwdiff/internal/viz"
)

func evalFunction(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	t, err := loadTarget(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	p := t.eval(at)
	if err := t.scriptErr(); err != nil {
		return err
	}

	if asJSON {
		return writePointJSON(os.Stdout, p)
	}

	fmt.Printf("f(x)  = %s\n", t.label)
	fmt.Printf("x     = %.10g\n", p.X)
	fmt.Printf("value = %.10g\n", p.Value)
	fmt.Printf("grad  = %.10g\n", p.Grad)
	return nil
}

// writePointJSON encodes p with non-finite parts as strings.
func writePointJSON(w io.Writer, p sweep.Point) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(storage.NewExportPoint(p))
}

func sweepFunction(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	t, err := loadTarget(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir, log.Logger)
	if err := st.Init(); err != nil {
		return err
	}

	grid := sweep.Grid{From: cfg.From, To: cfg.To, N: cfg.Samples}
	log.Info().Str("function", t.label).Str("width", t.width).Int("samples", grid.N).Msg("sweeping")
	start := time.Now()

	result, err := t.sweep(cmd.Context(), grid, sweep.Options{Workers: cfg.Workers, Logger: &log.Logger})
	if err != nil {
		return err
	}
	if err := t.scriptErr(); err != nil {
		log.Warn().Err(err).Msg("script evaluation failed at some points")
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{Function: cfg.Function, Script: cfg.Script, Width: cfg.Width}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Points))
	fmt.Println("\nmetrics:")
	metrics := result.Summary.Metrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}

	if showPlot {
		graph, err := viz.PlotSweep(result.Points, viz.PlotOptions{Title: t.label})
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(graph)
	}
	return nil
}

func checkFunction(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	t, err := loadTarget(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	xs := points
	if len(xs) == 0 {
		grid := sweep.Grid{From: cfg.From, To: cfg.To, N: cfg.Samples}
		xs = make([]float64, grid.N)
		for i := range xs {
			xs[i] = grid.At(i)
		}
	}

	report, err := t.check(xs, check.Options{Step: cfg.Check.Step, Tolerance: cfg.Check.Tolerance})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "X\tAUTOMATIC\tNUMERICAL\tERROR\tSTATUS")
	for _, s := range report.Samples {
		status := "ok"
		switch {
		case s.Skipped:
			status = "skipped"
		case s.MixedError > report.Tolerance:
			status = "FAIL"
		}
		fmt.Fprintf(w, "%.6g\t%.10g\t%.10g\t%.2e\t%s\n", s.X, s.Automatic, s.Numerical, s.MixedError, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !report.OK() {
		return fmt.Errorf("derivative check failed: max error %.3e exceeds %.3e", report.MaxError(), report.Tolerance)
	}
	fmt.Printf("\nall %d points within %.1e (max error %.3e)\n", len(report.Samples), report.Tolerance, report.MaxError())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log.Logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFUNCTION\tWIDTH\tRANGE\tSAMPLES\tTIME")

	for _, run := range runs {
		fn := run.Function
		if run.Script != "" {
			fn = run.Script
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%d\t%s\n",
			run.ID,
			fn,
			run.Width,
			run.From, run.To,
			run.Samples,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, log.Logger)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("function: %s\n", meta.Function)
	fmt.Printf("samples: %d\n\n", len(samples))

	graph, err := viz.PlotSweep(samples, viz.PlotOptions{})
	if err != nil {
		return err
	}
	fmt.Print(graph)

	if svgFile == "" {
		return nil
	}
	f, err := os.Create(svgFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := viz.WriteSVG(f, samples, viz.SVGOptions{Theme: viz.GetTheme(theme)}); err != nil {
		return err
	}
	log.Info().Str("run", runID).Str("file", svgFile).Msg("svg written")
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log.Logger)
	if outputFile != "" {
		if err := st.ExportFile(outputFile, args[0]); err != nil {
			return err
		}
		log.Info().Str("run", args[0]).Str("file", outputFile).Msg("exported")
		return nil
	}
	return st.Export(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log.Logger)
	return st.ExportCSV(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFUNCTION\tRANGE\tSAMPLES\tWIDTH")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%d\t%s\n", name, p.Function, p.From, p.To, p.Samples, p.Width)
	}
	return w.Flush()
}

func listFunctions(cmd *cobra.Command, args []string) error {
	fmt.Println(strings.Join(expr.Functions(), " "))
	consts := expr.Constants()
	names := make([]string, 0, len(consts))
	for name := range consts {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("constants: %s\n", strings.Join(names, " "))
	return nil
}

func explore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Width != config.WidthFloat64 {
		return fmt.Errorf("explore runs in %s, got width %s", config.WidthFloat64, cfg.Width)
	}
	t, err := loadTarget(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if err := viz.RunExplorer(viz.NewExplorer(t.f64, t.label, at, step, span)); err != nil {
		return err
	}
	return t.scriptErr()
}
