package pipeline

import (
	"fmt"
	"slices"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// Smooth applies a Savitzky-Golay filter to the x and y series of each
// landmark group. As with interpolation, the filter runs over the group's
// flattened (frame, index)-ordered value sequence, not over individual
// landmark time series; reproduce this grouping exactly.
//
// Returns ErrSmoothingParams for an even window or window <= polyorder,
// and ErrWindowTooLarge when any group has fewer samples than the window.
func Smooth(obs []landmark.Observation, window, polyorder int) ([]landmark.Observation, error) {
	filter, err := NewSavGol(window, polyorder)
	if err != nil {
		return nil, err
	}

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
		xs := make([]float64, len(idxs))
		ys := make([]float64, len(idxs))
		for k, i := range idxs {
			xs[k] = out[i].X
			ys[k] = out[i].Y
		}
		sx, err := filter.Apply(xs)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", g, err)
		}
		sy, err := filter.Apply(ys)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", g, err)
		}
		for k, i := range idxs {
			out[i].X = sx[k]
			out[i].Y = sy[k]
		}
	}
	return out, nil
}
