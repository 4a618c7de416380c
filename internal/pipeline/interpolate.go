package pipeline

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// FillMissing imputes missing x and y values independently within each
// landmark group. The group's observations form one flattened sequence in
// (frame, index) order; gaps are filled by positional linear interpolation
// between the nearest defined neighbours, boundary gaps carry the nearest
// defined value, and anything still missing afterwards falls back to the
// group mean for that axis. Observations whose x or y remains undefined
// (the whole group was empty) are dropped.
//
// Interpolating over the flattened per-group sequence conflates landmarks
// and frames. That matches the upstream data contract and must not be
// replaced with per-landmark time series.
func FillMissing(obs []landmark.Observation) []landmark.Observation {
	out := slices.Clone(obs)
	for _, g := range landmark.Groups() {
		var idxs []int
		for i, o := range out {
			if o.Group == g {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) == 0 {
			continue
		}
		for _, axis := range []func(*landmark.Observation) *float64{
			func(o *landmark.Observation) *float64 { return &o.X },
			func(o *landmark.Observation) *float64 { return &o.Y },
		} {
			vals := make([]float64, len(idxs))
			for k, i := range idxs {
				vals[k] = *axis(&out[i])
			}
			fillLinear(vals)
			fillMean(vals)
			for k, i := range idxs {
				*axis(&out[i]) = vals[k]
			}
		}
	}

	kept := out[:0]
	for _, o := range out {
		if landmark.Missing(o.X) || landmark.Missing(o.Y) {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

// fillLinear replaces NaN runs in place. Interior runs are interpolated
// linearly by position between the bracketing defined values; runs at
// either boundary copy the single nearest defined value (no
// extrapolation).
func fillLinear(vals []float64) {
	n := len(vals)
	prev := -1 // index of last defined value
	for i := 0; i <= n; i++ {
		if i < n && math.IsNaN(vals[i]) {
			continue
		}
		// vals[i] is defined (or i == n); fill the gap (prev, i).
		if i-prev > 1 {
			switch {
			case prev < 0 && i < n:
				for k := 0; k < i; k++ {
					vals[k] = vals[i]
				}
			case prev >= 0 && i == n:
				for k := prev + 1; k < n; k++ {
					vals[k] = vals[prev]
				}
			case prev >= 0 && i < n:
				lo, hi := vals[prev], vals[i]
				span := float64(i - prev)
				for k := prev + 1; k < i; k++ {
					alpha := float64(k-prev) / span
					vals[k] = lo + alpha*(hi-lo)
				}
			}
		}
		if i < n {
			prev = i
		}
	}
}

// fillMean replaces any remaining NaN with the mean of the defined
// values. A fully-missing sequence has no mean and is left as is.
func fillMean(vals []float64) {
	defined := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 || len(defined) == len(vals) {
		return
	}
	mean := stat.Mean(defined, nil)
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = mean
		}
	}
}
