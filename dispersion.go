package orrery

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
)

// DispersionResult summarizes a Monte-Carlo sweep of burn execution errors.
type DispersionResult struct {
	Finals  []Vector3 // final predicted position per sample, impacts excluded
	Mean    Vector3   // mean of Finals
	RMS     float64   // root-mean-square scatter of Finals about Mean
	Impacts int       // samples that ended on a predicted collision
}

// ManeuverDispersion samples Gaussian execution errors with standard
// deviation σ per axis around the candidate Δv and runs the full planning
// predictor once per sample. The live registry is untouched; a fixed seed
// makes the whole sweep reproducible.
func (sys *System) ManeuverDispersion(steps int, stepSize float64, Δv Vector3, σ float64, samples int, seed uint64) DispersionResult {
	var res DispersionResult
	if sys.sc == NoBody || samples <= 0 || steps <= 0 || stepSize <= 0 || σ < 0 {
		return res
	}
	cov := mat.NewSymDense(3, []float64{
		σ * σ, 0, 0,
		0, σ * σ, 0,
		0, 0, σ * σ,
	})
	normal, ok := distmv.NewNormal([]float64{Δv.X, Δv.Y, Δv.Z}, cov, rand.NewSource(seed))
	if !ok {
		return res
	}
	for i := 0; i < samples; i++ {
		sample := vecFromSlice(normal.Rand(nil))
		pred := sys.PredictFull(steps, stepSize, steps, sample, NoBody)
		if pred.Collided {
			res.Impacts++
			continue
		}
		if n := len(pred.Points); n > 0 {
			res.Finals = append(res.Finals, pred.Points[n-1])
		}
	}
	if len(res.Finals) == 0 {
		return res
	}
	xs := make([]float64, len(res.Finals))
	ys := make([]float64, len(res.Finals))
	zs := make([]float64, len(res.Finals))
	for i, f := range res.Finals {
		xs[i], ys[i], zs[i] = f.X, f.Y, f.Z
	}
	res.Mean = Vector3{stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil)}
	var sq float64
	for _, f := range res.Finals {
		d := f.Sub(res.Mean).Norm()
		sq += d * d
	}
	res.RMS = math.Sqrt(sq / float64(len(res.Finals)))
	return res
}
