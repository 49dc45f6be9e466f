package config

import "sort"

// Presets are named functions with a grid suited to them.
var Presets = map[string]*Config{
	"quad_sin": {
		Function: "x*x + sin(x)", From: -3, To: 3.14, Samples: 601, Width: WidthFloat64,
	},
	"gaussian": {
		Function: "exp(-x*x/2) / sqrt(2*pi)", From: -4, To: 4, Samples: 801, Width: WidthFloat64,
	},
	"logistic": {
		Function: "1 / (1 + exp(-x))", From: -8, To: 8, Samples: 801, Width: WidthFloat64,
	},
	"damped_wave": {
		Function: "exp(-x/4) * cos(2*x)", From: 0, To: 12, Samples: 1201, Width: WidthFloat64,
	},
	"softplus": {
		Function: "ln(1 + exp(x))", From: -6, To: 6, Samples: 601, Width: WidthFloat32,
	},
}

// GetPreset returns a copy of the named preset with default check settings,
// or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Check = CheckConfig{Step: DefaultCheckStep, Tolerance: DefaultCheckTol}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
