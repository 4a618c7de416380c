package pipeline

import (
	"fmt"
	"math"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// point is a 2-D landmark position within one frame.
type point struct {
	X, Y float64
}

// HandFeatureSet holds every derived scalar for one (frame, hand) pair.
// Field existence is statically enumerable: per-finger values live in
// fixed arrays with matching presence flags, and the output names are
// generated in one place (Named). A feature is absent whenever a required
// source landmark is missing in that frame.
type HandFeatureSet struct {
	ThumbIndexDistance    float64
	HasThumbIndexDistance bool
	PalmOrientation       float64
	HasPalmOrientation    bool

	// JointAngles[f][0..1] are three-point angles over the finger's joint
	// chain; JointAngles[f][2] is the two-point orientation of the chain's
	// last segment. The asymmetry (two angle-between-segments measurements
	// plus one orientation per finger) is part of the feature contract.
	JointAngles   [landmark.NumFingers][3]float64
	HasJointAngle [landmark.NumFingers][3]bool

	// OrientationAngles[f] is the wrist-to-fingertip orientation.
	OrientationAngles   [landmark.NumFingers]float64
	HasOrientationAngle [landmark.NumFingers]bool
}

// Empty reports whether no feature in the set is defined.
func (s HandFeatureSet) Empty() bool {
	if s.HasThumbIndexDistance || s.HasPalmOrientation {
		return false
	}
	for _, f := range landmark.Fingers() {
		if s.HasOrientationAngle[f] {
			return false
		}
		for i := 0; i < 3; i++ {
			if s.HasJointAngle[f][i] {
				return false
			}
		}
	}
	return true
}

// Named flattens the defined features into their output names, e.g.
// "right_hand_thumb_index_distance" or "left_hand_index_1_angle".
func (s HandFeatureSet) Named(hand landmark.Group) map[string]float64 {
	out := make(map[string]float64)
	if s.HasThumbIndexDistance {
		out[string(hand)+"_thumb_index_distance"] = s.ThumbIndexDistance
	}
	if s.HasPalmOrientation {
		out[string(hand)+"_palm_orientation"] = s.PalmOrientation
	}
	for _, f := range landmark.Fingers() {
		for i := 0; i < 3; i++ {
			if s.HasJointAngle[f][i] {
				out[fmt.Sprintf("%s_%s_%d_angle", hand, f, i)] = s.JointAngles[f][i]
			}
		}
		if s.HasOrientationAngle[f] {
			out[fmt.Sprintf("%s_%s_orientation_angle", hand, f)] = s.OrientationAngles[f]
		}
	}
	return out
}

// FeatureTable maps frame index -> hand group -> derived features.
type FeatureTable map[int]map[landmark.Group]HandFeatureSet

// ExtractHandFeatures derives the per-frame, per-hand geometry features:
// thumb-to-index distance, palm orientation, finger joint angles and
// finger orientation angles.
func ExtractHandFeatures(obs []landmark.Observation) FeatureTable {
	// Per-frame, per-hand landmark positions.
	hands := make(map[int]map[landmark.Group]map[int]point)
	for _, o := range obs {
		if o.Group != landmark.LeftHand && o.Group != landmark.RightHand {
			continue
		}
		frame := hands[o.Frame]
		if frame == nil {
			frame = make(map[landmark.Group]map[int]point)
			hands[o.Frame] = frame
		}
		pts := frame[o.Group]
		if pts == nil {
			pts = make(map[int]point)
			frame[o.Group] = pts
		}
		pts[o.Index] = point{o.X, o.Y}
	}

	table := make(FeatureTable, len(hands))
	for frame, byHand := range hands {
		for _, hand := range landmark.HandGroups() {
			pts, ok := byHand[hand]
			if !ok {
				continue
			}
			set := extractHand(pts)
			if set.Empty() {
				continue
			}
			if table[frame] == nil {
				table[frame] = make(map[landmark.Group]HandFeatureSet, 2)
			}
			table[frame][hand] = set
		}
	}
	return table
}

func extractHand(pts map[int]point) HandFeatureSet {
	var set HandFeatureSet

	if thumb, ok1 := pts[landmark.ThumbTip]; ok1 {
		if index, ok2 := pts[landmark.IndexTip]; ok2 {
			set.ThumbIndexDistance = distance(thumb, index)
			set.HasThumbIndexDistance = true
		}
	}

	if wrist, ok1 := pts[landmark.Wrist]; ok1 {
		thumb, ok2 := pts[landmark.ThumbTip]
		pinky, ok3 := pts[landmark.PinkyTip]
		if ok2 && ok3 {
			mid := point{(thumb.X + pinky.X) / 2, (thumb.Y + pinky.Y) / 2}
			set.PalmOrientation = orientationAngle(wrist, mid)
			set.HasPalmOrientation = true
		}
	}

	for _, f := range landmark.Fingers() {
		chain := f.Chain()
		for i := 0; i < 2; i++ {
			a, ok1 := pts[chain[i]]
			b, ok2 := pts[chain[i+1]]
			c, ok3 := pts[chain[i+2]]
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			angle, ok := jointAngle(a, b, c)
			if !ok {
				continue
			}
			set.JointAngles[f][i] = angle
			set.HasJointAngle[f][i] = true
		}
		// Last joint position: a two-point orientation, not a
		// three-point angle.
		if a, ok1 := pts[chain[2]]; ok1 {
			if b, ok2 := pts[chain[3]]; ok2 {
				set.JointAngles[f][2] = orientationAngle(a, b)
				set.HasJointAngle[f][2] = true
			}
		}

		if wrist, ok1 := pts[landmark.Wrist]; ok1 {
			if tip, ok2 := pts[f.Tip()]; ok2 {
				set.OrientationAngles[f] = orientationAngle(wrist, tip)
				set.HasOrientationAngle[f] = true
			}
		}
	}
	return set
}

func distance(a, b point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// orientationAngle is the angle of the line a->b relative to the
// horizontal, in degrees, range (-180, 180].
func orientationAngle(a, b point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// jointAngle is the angle at vertex b formed by points a and c, in
// degrees, range [0, 180]. Undefined (ok=false) when either segment has
// zero length.
func jointAngle(a, b, c point) (float64, bool) {
	v1 := point{a.X - b.X, a.Y - b.Y}
	v2 := point{c.X - b.X, c.Y - b.Y}
	m1 := math.Hypot(v1.X, v1.Y)
	m2 := math.Hypot(v2.X, v2.Y)
	if m1 == 0 || m2 == 0 {
		return 0, false
	}
	cos := (v1.X*v2.X + v1.Y*v2.Y) / (m1 * m2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, true
}
