package pipeline

import (
	"math"
	"testing"

	"github.com/asl-graph/databuilder/internal/landmark"
)

func TestCenterZeroCentroid(t *testing.T) {
	obs := []landmark.Observation{
		rh(0, 0, 0.25, 0.80),
		rh(0, 4, 0.75, 0.10),
		rh(1, 0, 0.40, 0.55),
		{Frame: 1, Group: landmark.Pose, Index: 0, X: 0.90, Y: 0.95},
	}

	out := Center(obs)
	var sx, sy float64
	for _, o := range out {
		sx += o.X
		sy += o.Y
	}
	n := float64(len(out))
	if math.Abs(sx/n) > 1e-6 || math.Abs(sy/n) > 1e-6 {
		t.Errorf("post-centering mean = (%v, %v), want (0, 0)", sx/n, sy/n)
	}
}

func TestCenterPreservesShape(t *testing.T) {
	obs := []landmark.Observation{
		rh(0, 0, 1.0, 1.0),
		rh(0, 4, 2.0, 3.0),
	}
	out := Center(obs)
	dx := out[1].X - out[0].X
	dy := out[1].Y - out[0].Y
	if math.Abs(dx-1.0) > 1e-12 || math.Abs(dy-2.0) > 1e-12 {
		t.Errorf("relative geometry changed: d = (%v, %v), want (1, 2)", dx, dy)
	}
}

func TestCenterDoesNotMutateInput(t *testing.T) {
	obs := []landmark.Observation{rh(0, 0, 1.0, 2.0), rh(0, 4, 3.0, 4.0)}
	Center(obs)
	if obs[0].X != 1.0 || obs[1].Y != 4.0 {
		t.Errorf("Center mutated its input: %+v", obs)
	}
}

func TestDropDepth(t *testing.T) {
	obs := []landmark.Observation{
		{Frame: 0, Group: landmark.Pose, Index: 0, X: 1, Y: 2, Z: 3},
		{Frame: 0, Group: landmark.Pose, Index: 1, X: 1, Y: 2, Z: math.NaN()},
	}
	out := DropDepth(obs)
	for i, o := range out {
		if !math.IsNaN(o.Z) {
			t.Errorf("obs[%d].Z = %v, want NaN", i, o.Z)
		}
	}
	// input untouched
	if obs[0].Z != 3 {
		t.Errorf("DropDepth mutated its input")
	}
}
