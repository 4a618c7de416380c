package pipeline

import (
	"sort"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// SelectCanonical parses each row's landmark identity and keeps only
// observations in the canonical 88-landmark set. Rows with malformed
// identifiers or out-of-set landmarks are dropped, never zero-filled:
// a canonical landmark absent from a frame stays absent and is handled
// downstream as missing data.
//
// The result is sorted by (frame, group, index), the stable order every
// later stage relies on.
func SelectCanonical(rows []landmark.Row) []landmark.Observation {
	obs := make([]landmark.Observation, 0, len(rows))
	for _, r := range rows {
		g, idx, err := landmark.ParseRowID(r.RowID)
		if err != nil {
			continue
		}
		if !landmark.Canonical(g, idx) {
			continue
		}
		obs = append(obs, landmark.Observation{
			Frame: r.Frame,
			Group: g,
			Index: idx,
			X:     r.X,
			Y:     r.Y,
			Z:     r.Z,
		})
	}
	sortObservations(obs)
	return obs
}

// sortObservations orders by (frame, group, index). Group breaks the tie
// between same-index landmarks of different groups in the same frame; no
// stage result depends on the cross-group tie order, this just keeps the
// pipeline deterministic.
func sortObservations(obs []landmark.Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Index < b.Index
	})
}
