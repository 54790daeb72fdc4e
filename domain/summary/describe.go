package summary

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Descriptives is the standard descriptive-statistics vector over one
// numeric column, in its natural computation order. Every statistic is NaN
// when the input partition is empty.
type Descriptives struct {
	Count  float64
	Mean   float64
	StdDev float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Describe computes the descriptive vector for a set of values. Missing
// entries (NaN) are dropped first; an empty or all-missing input produces a
// NaN-filled vector rather than an error, so an empty selection still yields
// a complete comparison table downstream.
//
// Quantiles use the stats.Percentile convention: a whole rank maps to the
// exact order statistic, a fractional rank to the midpoint of the two
// adjacent order statistics. A rank below the first order statistic clamps
// to the minimum, so quantiles over a non-empty partition always yield a
// value regardless of its size.
func Describe(values []float64) Descriptives {
	clean := dropNaN(values)

	d := Descriptives{
		Count:  float64(len(clean)),
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		P25:    math.NaN(),
		Median: math.NaN(),
		P75:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(clean) == 0 {
		return d
	}

	d.Mean = orNaN(stats.Mean(clean))
	d.StdDev = orNaN(stats.StandardDeviationSample(clean))
	d.Min = orNaN(stats.Min(clean))
	d.P25 = percentile(clean, 25)
	d.Median = orNaN(stats.Median(clean))
	d.P75 = percentile(clean, 75)
	d.Max = orNaN(stats.Max(clean))
	return d
}

// percentile wraps stats.Percentile for partitions small enough that the
// computed rank falls below the first order statistic, which the library
// reports as an out-of-bounds error. A 2-row partition still has a 25th
// percentile; it clamps to the minimum.
func percentile(clean []float64, percent float64) float64 {
	v, err := stats.Percentile(clean, percent)
	if err == nil {
		return v
	}
	return orNaN(stats.Min(clean))
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}

// round2 rounds to two decimal places, preserving NaN
func round2(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
