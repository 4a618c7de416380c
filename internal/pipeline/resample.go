package pipeline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/asl-graph/databuilder/internal/landmark"
)

type landmarkKey struct {
	Group landmark.Group
	Index int
}

// Resample maps a recording's frame count to exactly target frames.
// Existing frame indices are first renumbered densely (rank order);
// recordings shorter than the target are upsampled by linear
// interpolation between bracketing frames, longer ones are downsampled by
// uniform frame selection, and a recording already at the target passes
// through with only the dense renumbering.
func Resample(obs []landmark.Observation, target int) []landmark.Observation {
	obs = renumberFrames(obs)
	n := frameCount(obs)
	switch {
	case n == 0 || n == target:
		return obs
	case n < target:
		return upsample(obs, n, target)
	default:
		return downsample(obs, n, target)
	}
}

// renumberFrames maps the distinct frame indices, in ascending order,
// onto 0..n-1 and re-sorts.
func renumberFrames(obs []landmark.Observation) []landmark.Observation {
	distinct := make(map[int]bool)
	for _, o := range obs {
		distinct[o.Frame] = true
	}
	frames := make([]int, 0, len(distinct))
	for f := range distinct {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	rank := make(map[int]int, len(frames))
	for i, f := range frames {
		rank[f] = i
	}

	out := make([]landmark.Observation, len(obs))
	for i, o := range obs {
		o.Frame = rank[o.Frame]
		out[i] = o
	}
	sortObservations(out)
	return out
}

func frameCount(obs []landmark.Observation) int {
	distinct := make(map[int]bool)
	for _, o := range obs {
		distinct[o.Frame] = true
	}
	return len(distinct)
}

// upsample emits target virtual frames at evenly spaced positions over
// [0, n-1]. Each virtual frame interpolates every canonical landmark
// present in both the bracketing lower and upper frames; a landmark
// missing from either side is omitted from the new frame entirely.
func upsample(obs []landmark.Observation, n, target int) []landmark.Observation {
	byFrame := make(map[int]map[landmarkKey]landmark.Observation)
	for _, o := range obs {
		m := byFrame[o.Frame]
		if m == nil {
			m = make(map[landmarkKey]landmark.Observation)
			byFrame[o.Frame] = m
		}
		m[landmarkKey{o.Group, o.Index}] = o
	}

	positions := linspace(0, float64(n-1), target)
	out := make([]landmark.Observation, 0, target*landmark.CanonicalCount())
	for i, pos := range positions {
		lower := int(math.Floor(pos))
		upper := int(math.Ceil(pos))
		alpha := pos - float64(lower)
		lo, hi := byFrame[lower], byFrame[upper]
		for _, g := range landmark.Groups() {
			for _, idx := range landmark.CanonicalIndices(g) {
				key := landmarkKey{g, idx}
				a, okLo := lo[key]
				b, okHi := hi[key]
				if !okLo || !okHi {
					continue
				}
				out = append(out, landmark.Observation{
					Frame: i,
					Group: g,
					Index: idx,
					X:     (1-alpha)*a.X + alpha*b.X,
					Y:     (1-alpha)*a.Y + alpha*b.Y,
					Z:     math.NaN(),
				})
			}
		}
	}
	return out
}

// downsample keeps target evenly spaced frames, selected by integer
// truncation of the linspace over [0, n-1], then renumbers densely. Pure
// subsampling: no interpolation between kept frames.
func downsample(obs []landmark.Observation, n, target int) []landmark.Observation {
	keep := make(map[int]bool, target)
	for _, pos := range linspace(0, float64(n-1), target) {
		keep[int(pos)] = true
	}
	kept := make([]landmark.Observation, 0, len(obs))
	for _, o := range obs {
		if keep[o.Frame] {
			kept = append(kept, o)
		}
	}
	return renumberFrames(kept)
}

func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
