package plot

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDomain(t *testing.T) {
	ev := NewEvaluator()
	defer ev.Close()

	tests := []struct {
		in   string
		a, b float64
		err  bool
	}{
		{"-1, 1", -1, 1, false},
		{"0, 2*pi", 0, 2 * math.Pi, false},
		{"1e-3, 1E3", 0.001, 1000, false},
		{"1, 1", 0, 0, true},
		{"2, 1", 0, 0, true},
		{"1", 0, 0, true},
		{"1, 2, 3", 0, 0, true},
		{"", 0, 0, true},
		{"0, 1/0", 0, 0, true},
		{"0, ,", 0, 0, true},
	}
	for _, tt := range tests {
		a, b, err := ev.Domain(tt.in)
		if tt.err {
			if !errors.Is(err, ErrDomain) {
				t.Errorf("Domain(%q) err = %v, want ErrDomain", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Domain(%q): %v", tt.in, err)
			continue
		}
		if math.Abs(a-tt.a) > 1e-12 || math.Abs(b-tt.b) > 1e-12 {
			t.Errorf("Domain(%q) = %g, %g; want %g, %g", tt.in, a, b, tt.a, tt.b)
		}
	}
}

func TestSteps(t *testing.T) {
	ev := NewEvaluator()
	defer ev.Close()

	tests := []struct {
		in   string
		want int
		err  bool
	}{
		{"1000", 1000, false},
		{"1e3", 1000, false},
		{"2", 2, false},
		{"+50", 50, false},
		{"1", 0, true},
		{"2.5", 0, true},
		{"-10", 0, true},
		{"1e9", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ev.Steps(tt.in)
		if tt.err {
			if !errors.Is(err, ErrSteps) {
				t.Errorf("Steps(%q) err = %v, want ErrSteps", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Steps(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	ev := NewEvaluator()
	defer ev.Close()

	x, y, err := ev.Sample("x^2 + sin(0)", -1, 1, 5)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	wantX := []float64{-1, -0.5, 0, 0.5, 1}
	wantY := []float64{1, 0.25, 0, 0.25, 1}
	for i := range wantX {
		if x[i] != wantX[i] || math.Abs(y[i]-wantY[i]) > 1e-12 {
			t.Fatalf("point %d = (%g, %g), want (%g, %g)", i, x[i], y[i], wantX[i], wantY[i])
		}
	}
}

func TestSampleConstantAndGlobals(t *testing.T) {
	ev := NewEvaluator()
	defer ev.Close()

	_, y, err := ev.Sample("2", 0, 1, 3)
	if err != nil || len(y) != 3 || y[2] != 2 {
		t.Fatalf("constant: y=%v err=%v", y, err)
	}
	_, y, err = ev.Sample("ln(e) + abs(-1) + floor(pi)", 0, 1, 2)
	if err != nil || math.Abs(y[0]-5) > 1e-12 {
		t.Fatalf("globals: y=%v err=%v", y, err)
	}
}

func TestSampleRejects(t *testing.T) {
	ev := NewEvaluator()
	defer ev.Close()

	for _, fn := range []string{"", "x +", "undefined(x)", "nope * x", "print(x)", "(x > 0)"} {
		if _, _, err := ev.Sample(fn, 0, 1, 3); !errors.Is(err, ErrEvaluation) {
			t.Errorf("Sample(%q) err = %v, want ErrEvaluation", fn, err)
		}
	}

	// the state stays usable after a failure
	if _, _, err := ev.Sample("x", 0, 1, 3); err != nil {
		t.Fatalf("Sample after failure: %v", err)
	}
}

func TestSampleTimesOut(t *testing.T) {
	ev := NewEvaluator()
	defer ev.Close()
	ev.timeout = 50 * time.Millisecond

	_, _, err := ev.Sample("(function() while true do end end)()", 0, 1, 2)
	if !errors.Is(err, ErrEvaluation) {
		t.Fatalf("err = %v, want ErrEvaluation", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 0.5 || got[2] != 1 {
		t.Fatalf("Linspace = %v", got)
	}
	if Linspace(0, 1, 0) != nil {
		t.Fatal("Linspace with n=0 should be nil")
	}
}
