package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/fwdiff/internal/check"
	"github.com/san-kum/fwdiff/internal/config"
	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/expr"
	"github.com/san-kum/fwdiff/internal/scalar"
	"github.com/san-kum/fwdiff/internal/script"
	"github.com/san-kum/fwdiff/internal/sweep"
)

// resolveConfig layers defaults, preset, config file, positional expression
// and explicitly set flags, later sources winning.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) == 1 {
		cfg.Function = args[0]
		cfg.Script = ""
	}

	flags := cmd.Flags()
	if flags.Changed("script") {
		cfg.Script = scriptFile
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("from") {
		cfg.From = from
	}
	if flags.Changed("to") {
		cfg.To = to
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("h") {
		cfg.Check.Step = checkStep
	}
	if flags.Changed("tol") {
		cfg.Check.Tolerance = checkTol
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// target is the function under study at the configured width. Exactly one
// of f64 and f32 is set.
type target struct {
	label   string
	width   string
	f64     dual.Func[scalar.Float64]
	f32     dual.Func[scalar.Float32]
	program *script.Program
}

func loadTarget(ctx context.Context, cfg *config.Config) (*target, error) {
	if cfg.Script != "" {
		if cfg.Width != config.WidthFloat64 {
			return nil, fmt.Errorf("scripts are evaluated in %s, got width %s", config.WidthFloat64, cfg.Width)
		}
		p, err := script.NewLoader(scriptTimeout, log.Logger).Load(ctx, cfg.Script, nil)
		if err != nil {
			return nil, err
		}
		return &target{label: cfg.Script, width: cfg.Width, f64: p.Func(ctx), program: p}, nil
	}

	t := &target{label: cfg.Function, width: cfg.Width}
	var err error
	if cfg.Width == config.WidthFloat32 {
		t.f32, err = expr.Compile[scalar.Float32](cfg.Function)
	} else {
		t.f64, err = expr.Compile[scalar.Float64](cfg.Function)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *target) eval(x float64) sweep.Point {
	if t.f32 != nil {
		d := t.f32(dual.Variable(scalar.Float32(x)))
		return sweep.Point{X: x, Value: d.Real().Float64(), Grad: d.Grad().Float64()}
	}
	d := t.f64(dual.Variable(scalar.Float64(x)))
	return sweep.Point{X: x, Value: d.Real().Float64(), Grad: d.Grad().Float64()}
}

func (t *target) sweep(ctx context.Context, g sweep.Grid, opts sweep.Options) (*sweep.Result, error) {
	if t.f32 != nil {
		return sweep.Run(ctx, t.f32, g, opts)
	}
	return sweep.Run(ctx, t.f64, g, opts)
}

func (t *target) check(xs []float64, opts check.Options) (*check.Report, error) {
	if t.f32 != nil {
		return check.Against(t.f32, xs, opts)
	}
	return check.Against(t.f64, xs, opts)
}

// scriptErr reports the first failure of a script-backed function, if any.
func (t *target) scriptErr() error {
	if t.program == nil {
		return nil
	}
	return t.program.Err()
}
