package plot

import (
	"math"
	"strings"
)

// SparklineChars provides 8-level vertical resolution
var SparklineChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values into width cells, down-sampling by bucket mean
// Non-finite values are skipped; a bucket with none renders as a space
func Sparkline(values []float64, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}

	buckets := bucketMeans(values, width)

	// Determine range
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range buckets {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return strings.Repeat(" ", len(buckets))
	}

	// Handle flat line
	rangeV := hi - lo
	if rangeV == 0 {
		rangeV = 1
	}

	var sb strings.Builder
	for _, v := range buckets {
		if math.IsNaN(v) {
			sb.WriteByte(' ')
			continue
		}
		norm := (v - lo) / rangeV
		idx := int(norm * 7.99)
		if idx < 0 {
			idx = 0
		}
		if idx > 7 {
			idx = 7
		}
		sb.WriteRune(SparklineChars[idx])
	}
	return sb.String()
}

// bucketMeans folds values into at most width buckets, NaN marking empty ones
func bucketMeans(values []float64, width int) []float64 {
	n := len(values)
	if n < width {
		width = n
	}
	out := make([]float64, width)
	for b := 0; b < width; b++ {
		from := b * n / width
		to := (b + 1) * n / width
		var sum float64
		var count int
		for _, v := range values[from:to] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
			count++
		}
		if count == 0 {
			out[b] = math.NaN()
			continue
		}
		out[b] = sum / float64(count)
	}
	return out
}

// bounds returns the finite min and max of values
func bounds(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, !math.IsInf(lo, 1)
}
