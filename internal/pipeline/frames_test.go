package pipeline

import (
	"math"
	"testing"

	"github.com/asl-graph/databuilder/internal/landmark"
)

func TestDropEmptyFrames(t *testing.T) {
	nan := math.NaN()
	rows := []landmark.Row{
		{RowID: "0-pose-0", Frame: 0, X: 0.5, Y: 0.5},
		{RowID: "0-pose-1", Frame: 0, X: nan, Y: nan},
		{RowID: "1-pose-0", Frame: 1, X: nan, Y: nan},
		{RowID: "1-pose-1", Frame: 1, X: nan, Y: nan},
		// x defined but y missing does not make the frame usable
		{RowID: "2-pose-0", Frame: 2, X: 0.1, Y: nan},
		{RowID: "3-pose-0", Frame: 3, X: 0.2, Y: 0.3},
	}

	out := DropEmptyFrames(rows)

	frames := make(map[int]int)
	for _, r := range out {
		frames[r.Frame]++
	}
	if len(frames) != 2 {
		t.Fatalf("kept %d frames, want 2 (got %v)", len(frames), frames)
	}
	if frames[0] != 2 {
		t.Errorf("frame 0 kept %d rows, want 2 (all rows of a usable frame survive)", frames[0])
	}
	if frames[1] != 0 || frames[2] != 0 {
		t.Errorf("frames 1 and 2 should be dropped, got %v", frames)
	}
	if frames[3] != 1 {
		t.Errorf("frame 3 kept %d rows, want 1", frames[3])
	}
}

func TestDropEmptyFramesAllEmpty(t *testing.T) {
	nan := math.NaN()
	rows := []landmark.Row{
		{RowID: "0-pose-0", Frame: 0, X: nan, Y: nan},
		{RowID: "1-pose-0", Frame: 1, X: nan, Y: 0.2},
	}
	if out := DropEmptyFrames(rows); len(out) != 0 {
		t.Errorf("expected empty result, got %d rows", len(out))
	}
}
