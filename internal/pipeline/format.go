package pipeline

import (
	"sort"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// FormatExample assembles the final per-frame records: landmark arrays in
// canonical group order with ascending index within each group, plus any
// defined hand features for the frame. The hand_features key is omitted
// when no feature was defined.
func FormatExample(obs []landmark.Observation, feats FeatureTable, sign string) landmark.Example {
	byFrame := make(map[int][]landmark.Observation)
	for _, o := range obs {
		byFrame[o.Frame] = append(byFrame[o.Frame], o)
	}
	frames := make([]int, 0, len(byFrame))
	for f := range byFrame {
		frames = append(frames, f)
	}
	sort.Ints(frames)

	records := make([]landmark.FrameRecord, 0, len(frames))
	for _, f := range frames {
		rec := landmark.FrameRecord{Frame: f}
		frameObs := byFrame[f]
		for _, g := range landmark.Groups() {
			var grouped []landmark.Observation
			for _, o := range frameObs {
				if o.Group == g {
					grouped = append(grouped, o)
				}
			}
			sort.Slice(grouped, func(i, j int) bool { return grouped[i].Index < grouped[j].Index })
			for _, o := range grouped {
				rec.Landmarks = append(rec.Landmarks, [2]float64{o.X, o.Y})
				rec.LandmarkTypes = append(rec.LandmarkTypes, o.ID())
			}
		}

		features := make(map[string]float64)
		for _, hand := range landmark.HandGroups() {
			if set, ok := feats[f][hand]; ok {
				for name, v := range set.Named(hand) {
					features[name] = v
				}
			}
		}
		if len(features) > 0 {
			rec.HandFeatures = features
		}
		records = append(records, rec)
	}
	return landmark.Example{Frames: records, Sign: sign}
}
