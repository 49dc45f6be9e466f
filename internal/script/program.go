package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/san-kum/fwdiff/internal/dual"
	"github.com/san-kum/fwdiff/internal/scalar"
)

// EntryPoint is the function a script must define.
const EntryPoint = "f"

var (
	// ErrNoFunction indicates the script does not define a callable f.
	ErrNoFunction = errors.New("script: no callable f defined")

	// ErrBadReturn indicates f returned something other than a dual or number.
	ErrBadReturn = errors.New("script: f must return a dual or a number")

	// ErrTimeout indicates an evaluation exceeded the loader's timeout.
	ErrTimeout = errors.New("script: evaluation timed out")
)

// Loader compiles scripts with a per-evaluation timeout.
type Loader struct {
	timeout time.Duration
	log     zerolog.Logger
}

// NewLoader returns a Loader. A zero timeout defaults to five seconds.
// Script print() output goes to log at debug level.
func NewLoader(timeout time.Duration, log zerolog.Logger) *Loader {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Loader{timeout: timeout, log: log}
}

// Program is a loaded script.
type Program struct {
	name    string
	fn      starlark.Callable
	timeout time.Duration
	log     zerolog.Logger

	mu  sync.Mutex
	err error
}

// Load executes the script's top level and resolves f. src may be a string,
// []byte or nil (read filename from disk).
func (l *Loader) Load(ctx context.Context, filename string, src interface{}) (*Program, error) {
	p := &Program{name: filename, timeout: l.timeout, log: l.log}

	thread := p.thread()
	stop := context.AfterFunc(ctx, func() { thread.Cancel(ctx.Err().Error()) })
	defer stop()

	globals, err := starlark.ExecFile(thread, filename, src, predeclared())
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", filename, err)
	}
	globals.Freeze()

	fn, ok := globals[EntryPoint].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNoFunction, filename)
	}
	p.fn = fn
	return p, nil
}

func (p *Program) thread() *starlark.Thread {
	return &starlark.Thread{
		Name: p.name,
		Print: func(_ *starlark.Thread, msg string) {
			p.log.Debug().Str("script", p.name).Msg(msg)
		},
	}
}

// Name is the filename the program was loaded from.
func (p *Program) Name() string { return p.name }

// Eval calls f(x).
func (p *Program) Eval(ctx context.Context, x dual.Dual[scalar.Float64]) (dual.Dual[scalar.Float64], error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	thread := p.thread()
	stop := context.AfterFunc(ctx, func() { thread.Cancel(ctx.Err().Error()) })
	defer stop()

	out, err := starlark.Call(thread, p.fn, starlark.Tuple{Value{d: x}}, nil)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return x, fmt.Errorf("%w after %v: %v", ErrTimeout, p.timeout, err)
		}
		return x, fmt.Errorf("script: %s: %w", p.name, err)
	}

	d, ok := toDual(out)
	if !ok {
		return x, fmt.Errorf("%w, got %s", ErrBadReturn, out.Type())
	}
	return d, nil
}

// Func adapts the program to a plain differentiable function. Failed
// evaluations yield (NaN, NaN); the first failure is kept for Err.
func (p *Program) Func(ctx context.Context) dual.Func[scalar.Float64] {
	nan := scalar.Float64(math.NaN())
	return func(x dual.Dual[scalar.Float64]) dual.Dual[scalar.Float64] {
		d, err := p.Eval(ctx, x)
		if err != nil {
			p.mu.Lock()
			if p.err == nil {
				p.err = err
			}
			p.mu.Unlock()
			return dual.New(nan, nan)
		}
		return d
	}
}

// Err returns the first error recorded by a function from Func.
func (p *Program) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
