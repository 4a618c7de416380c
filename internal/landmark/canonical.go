package landmark

// The canonical landmark set: the fixed subset of MediaPipe holistic
// landmarks the pipeline retains. 21 pose + 25 face + 21 per hand,
// 88 landmarks total.
var canonicalIndices = map[Group][]int{
	Pose: {0, 1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14, 15, 16, 23, 24, 25, 26, 27, 28},
	Face: {33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44, 45, 46,
		61, 62, 63, 64, 66, 291, 292, 293, 294, 295, 296},
	RightHand: handIndices(),
	LeftHand:  handIndices(),
}

var canonicalSet = buildCanonicalSet()

func handIndices() []int {
	out := make([]int, NumHandLandmarks)
	for i := range out {
		out[i] = i
	}
	return out
}

func buildCanonicalSet() map[Group]map[int]bool {
	set := make(map[Group]map[int]bool, len(canonicalIndices))
	for g, indices := range canonicalIndices {
		set[g] = make(map[int]bool, len(indices))
		for _, i := range indices {
			set[g][i] = true
		}
	}
	return set
}

// Canonical reports whether (group, index) is part of the canonical
// landmark set.
func Canonical(g Group, index int) bool {
	return canonicalSet[g][index]
}

// CanonicalIndices returns the canonical landmark indices for a group in
// ascending order. The returned slice must not be modified.
func CanonicalIndices(g Group) []int {
	return canonicalIndices[g]
}

// CanonicalCount returns the total size of the canonical landmark set.
func CanonicalCount() int {
	n := 0
	for _, indices := range canonicalIndices {
		n += len(indices)
	}
	return n
}
