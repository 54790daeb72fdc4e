package charts

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"claimscope/domain/dataset"
	"claimscope/domain/summary"
)

// KDECurve is one group's estimated claim-value density
type KDECurve struct {
	Name   string    `json:"name"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Median float64   `json:"median"`
}

// KDEPayload backs the overlaid density chart
type KDEPayload struct {
	Title  string     `json:"title"`
	Curves []KDECurve `json:"curves"`
}

// kdeGridSize is the number of evaluation points per density curve
const kdeGridSize = 200

// GenderKDE builds the overlaid male/female claim density curves with their
// median markers
func GenderKDE(t *dataset.Table) KDEPayload {
	genders := t.Categorical("gender")
	claims := t.Numeric(targetField)

	byGender := make(map[string][]float64)
	for i, g := range genders {
		if g == "" || math.IsNaN(claims[i]) {
			continue
		}
		byGender[g] = append(byGender[g], claims[i])
	}

	payload := KDEPayload{
		Title: "Claim Distribution - Men vs Women: Higher Peaks Indicate More-Common Claim Amounts",
	}
	for _, name := range []string{"Male", "Female"} {
		vals := byGender[name]
		if len(vals) < 2 {
			continue
		}
		curve := densityCurve(vals)
		curve.Name = name
		curve.Median = round2(summary.Describe(vals).Median)
		payload.Curves = append(payload.Curves, curve)
	}
	return payload
}

// densityCurve evaluates a Gaussian kernel density estimate on a regular
// grid spanning the data plus three bandwidths on either side. The bandwidth
// follows Silverman's rule of thumb.
func densityCurve(values []float64) KDECurve {
	d := summary.Describe(values)
	n := float64(len(values))

	h := 1.06 * d.StdDev * math.Pow(n, -0.2)
	if h <= 0 || math.IsNaN(h) {
		h = 1
	}
	kernel := distuv.Normal{Mu: 0, Sigma: h}

	lo := d.Min - 3*h
	hi := d.Max + 3*h
	step := (hi - lo) / float64(kdeGridSize-1)

	curve := KDECurve{
		X: make([]float64, kdeGridSize),
		Y: make([]float64, kdeGridSize),
	}
	for i := 0; i < kdeGridSize; i++ {
		x := lo + float64(i)*step
		density := 0.0
		for _, v := range values {
			density += kernel.Prob(x - v)
		}
		curve.X[i] = x
		curve.Y[i] = density / n
	}
	return curve
}
