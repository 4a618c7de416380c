// Package landmark defines the data model shared by every pipeline stage:
// landmark groups, per-frame observations, the canonical landmark set and
// the formatted output records.
package landmark

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Group identifies which body part a landmark belongs to.
type Group string

// Landmark groups, in canonical iteration order.
const (
	Face      Group = "face"
	LeftHand  Group = "left_hand"
	Pose      Group = "pose"
	RightHand Group = "right_hand"
)

// Groups returns all landmark groups in canonical order. Every place that
// iterates groups (selection, resampling, output formatting) uses this
// order so results are deterministic.
func Groups() []Group {
	return []Group{Face, LeftHand, Pose, RightHand}
}

// HandGroups returns the two hand groups, in canonical order.
func HandGroups() []Group {
	return []Group{LeftHand, RightHand}
}

// IsValid reports whether g is one of the four known groups.
func (g Group) IsValid() bool {
	switch g {
	case Face, LeftHand, Pose, RightHand:
		return true
	}
	return false
}

// Observation is one landmark measurement in one frame. Coordinates use
// NaN to represent a missing value, matching the source data where a
// tracker can lose individual landmarks per frame.
type Observation struct {
	Frame int
	Group Group
	Index int
	X     float64
	Y     float64
	Z     float64 // depth; dropped by the dimension reducer
}

// ID returns the composite landmark identity, e.g. "right_hand-4".
func (o Observation) ID() string {
	return string(o.Group) + "-" + strconv.Itoa(o.Index)
}

// Missing reports whether a coordinate value is absent.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

// ParseRowID splits a raw row identifier of the form
// "<prefix>-<group>-<index>" (e.g. "18-right_hand-4") into its group and
// landmark index. The prefix is the source frame number and is ignored;
// the authoritative frame comes from the row's frame column.
func ParseRowID(rowID string) (Group, int, error) {
	parts := strings.SplitN(rowID, "-", 3)
	if len(parts) != 3 {
		return "", 0, fmt.Errorf("malformed row id %q", rowID)
	}
	g := Group(parts[1])
	if !g.IsValid() {
		return "", 0, fmt.Errorf("unknown landmark group %q in row id %q", parts[1], rowID)
	}
	idx, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, fmt.Errorf("bad landmark index in row id %q: %w", rowID, err)
	}
	return g, idx, nil
}
