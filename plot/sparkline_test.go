package plot

import (
	"math"
	"testing"
	"unicode/utf8"
)

func TestSparklineRamp(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	got := Sparkline(values, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Fatalf("Sparkline = %q", got)
	}
}

func TestSparklineDownsamples(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	got := Sparkline(values, 10)
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Fatalf("width = %d, want 10", n)
	}
	r, _ := utf8.DecodeRuneInString(got)
	if r != '▁' {
		t.Errorf("first cell = %q", r)
	}
	if last, _ := utf8.DecodeLastRuneInString(got); last != '█' {
		t.Errorf("last cell = %q", last)
	}
}

func TestSparklineFlatAndGaps(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}, 10); got != "▁▁▁" {
		t.Errorf("flat = %q", got)
	}
	if got := Sparkline([]float64{0, math.NaN(), 1}, 3); got != "▁ █" {
		t.Errorf("gap = %q", got)
	}
	if got := Sparkline([]float64{math.Inf(1)}, 4); got != " " {
		t.Errorf("no finite values = %q", got)
	}
	if Sparkline(nil, 5) != "" || Sparkline([]float64{1}, 0) != "" {
		t.Error("empty input should render nothing")
	}
}
