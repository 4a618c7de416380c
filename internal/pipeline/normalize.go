package pipeline

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// DropDepth discards the depth coordinate from every observation. No-op
// when depth was never present.
func DropDepth(obs []landmark.Observation) []landmark.Observation {
	out := slices.Clone(obs)
	for i := range out {
		out[i].Z = math.NaN()
	}
	return out
}

// Center subtracts the recording's centroid from every coordinate so the
// mean x and mean y over all observations become zero. Absolute spatial
// position is removed; only shape and motion remain.
func Center(obs []landmark.Observation) []landmark.Observation {
	if len(obs) == 0 {
		return nil
	}
	xs := make([]float64, len(obs))
	ys := make([]float64, len(obs))
	for i, o := range obs {
		xs[i] = o.X
		ys[i] = o.Y
	}
	cx := stat.Mean(xs, nil)
	cy := stat.Mean(ys, nil)

	out := slices.Clone(obs)
	for i := range out {
		out[i].X -= cx
		out[i].Y -= cy
	}
	return out
}
