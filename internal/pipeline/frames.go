package pipeline

import "github.com/asl-graph/databuilder/internal/landmark"

// DropEmptyFrames removes every frame that has no row with both x and y
// defined. The surviving rows therefore guarantee at least one
// fully-defined coordinate pair per frame. An empty result is valid and
// surfaces later as ErrEmptyRecording.
func DropEmptyFrames(rows []landmark.Row) []landmark.Row {
	usable := make(map[int]bool)
	for _, r := range rows {
		if !landmark.Missing(r.X) && !landmark.Missing(r.Y) {
			usable[r.Frame] = true
		}
	}
	out := make([]landmark.Row, 0, len(rows))
	for _, r := range rows {
		if usable[r.Frame] {
			out = append(out, r)
		}
	}
	return out
}
