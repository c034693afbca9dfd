package plot

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

var (
	ErrEvaluation = errors.New("function evaluation failed")
	ErrDomain     = errors.New("invalid domain")
	ErrSteps      = errors.New("invalid steps")
)

const (
	// MaxSteps bounds the sample count of a single series
	MaxSteps = 100000

	defaultEvalTimeout = time.Second
)

// Evaluator compiles user expressions in a sandboxed Lua state
// Only the base and math libraries are loaded; math functions are also globals
type Evaluator struct {
	L       *lua.LState
	timeout time.Duration
}

// NewEvaluator creates an evaluator; Close releases the Lua state
func NewEvaluator() *Evaluator {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "print", "module", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	if mt, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		mt.ForEach(func(k, v lua.LValue) {
			if name, ok := k.(lua.LString); ok {
				L.SetGlobal(string(name), v)
			}
		})
	}
	L.SetGlobal("e", lua.LNumber(math.E))
	L.SetGlobal("ln", L.GetGlobal("log"))

	return &Evaluator{L: L, timeout: defaultEvalTimeout}
}

// Close releases the Lua state
func (ev *Evaluator) Close() {
	ev.L.Close()
}

// call runs chunk and returns its results
func (ev *Evaluator) call(chunk string) ([]lua.LValue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ev.timeout)
	defer cancel()
	ev.L.SetContext(ctx)
	defer ev.L.RemoveContext()

	base := ev.L.GetTop()
	fn, err := ev.L.LoadString(chunk)
	if err != nil {
		return nil, err
	}
	ev.L.Push(fn)
	if err := ev.L.PCall(0, lua.MultRet, nil); err != nil {
		ev.L.SetTop(base)
		return nil, err
	}
	top := ev.L.GetTop()
	out := make([]lua.LValue, 0, top-base)
	for i := base + 1; i <= top; i++ {
		out = append(out, ev.L.Get(i))
	}
	ev.L.SetTop(base)
	return out, nil
}

func number(v lua.LValue) (float64, bool) {
	n, ok := v.(lua.LNumber)
	return float64(n), ok
}

// Domain parses "a, b" into finite bounds with a < b
func (ev *Evaluator) Domain(text string) (float64, float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, 0, errors.Wrap(ErrDomain, "empty")
	}
	vals, err := ev.call("return " + text)
	if err != nil {
		return 0, 0, errors.Wrap(ErrDomain, err.Error())
	}
	if len(vals) != 2 {
		return 0, 0, errors.Wrapf(ErrDomain, "want 2 values, got %d", len(vals))
	}
	a, okA := number(vals[0])
	b, okB := number(vals[1])
	if !okA || !okB {
		return 0, 0, errors.Wrap(ErrDomain, "bounds must be numbers")
	}
	if !finite(a) || !finite(b) {
		return 0, 0, errors.Wrap(ErrDomain, "bounds must be finite")
	}
	if a >= b {
		return 0, 0, errors.Wrapf(ErrDomain, "%g is not below %g", a, b)
	}
	return a, b, nil
}

// Steps parses an integral sample count in [2, MaxSteps]
func (ev *Evaluator) Steps(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, errors.Wrap(ErrSteps, "empty")
	}
	vals, err := ev.call("return " + text)
	if err != nil {
		return 0, errors.Wrap(ErrSteps, err.Error())
	}
	if len(vals) != 1 {
		return 0, errors.Wrapf(ErrSteps, "want 1 value, got %d", len(vals))
	}
	n, ok := number(vals[0])
	if !ok || !finite(n) || n != math.Trunc(n) {
		return 0, errors.Wrap(ErrSteps, "steps must be an integer")
	}
	if n < 2 || n > MaxSteps {
		return 0, errors.Wrapf(ErrSteps, "%g outside [2, %d]", n, MaxSteps)
	}
	return int(n), nil
}

// Sample evaluates f(x) over n points spaced linearly across [a, b]
func (ev *Evaluator) Sample(function string, a, b float64, n int) ([]float64, []float64, error) {
	if strings.TrimSpace(function) == "" {
		return nil, nil, errors.Wrap(ErrEvaluation, "empty function")
	}
	vals, err := ev.call("return function(x) return " + function + " end")
	if err != nil {
		return nil, nil, errors.Wrap(ErrEvaluation, err.Error())
	}
	if len(vals) != 1 {
		return nil, nil, errors.Wrap(ErrEvaluation, "not an expression")
	}
	f, ok := vals[0].(*lua.LFunction)
	if !ok {
		return nil, nil, errors.Wrap(ErrEvaluation, "not an expression")
	}

	ctx, cancel := context.WithTimeout(context.Background(), ev.timeout)
	defer cancel()
	ev.L.SetContext(ctx)
	defer ev.L.RemoveContext()

	xs := Linspace(a, b, n)
	ys := make([]float64, n)
	for i, x := range xs {
		if err := ev.L.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, lua.LNumber(x)); err != nil {
			return nil, nil, errors.Wrap(ErrEvaluation, err.Error())
		}
		ret := ev.L.Get(-1)
		ev.L.Pop(1)
		y, ok := number(ret)
		if !ok {
			return nil, nil, errors.Wrapf(ErrEvaluation, "f(%g) returned %s", x, ret.Type())
		}
		ys[i] = y
	}
	return xs, ys, nil
}

// Linspace returns n evenly spaced points from a to b inclusive
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = a
		return out
	}
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}
	out[n-1] = b
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
