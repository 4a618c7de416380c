package landmark

// FrameRecord is one fully processed frame in an output example. Landmarks
// and LandmarkTypes are parallel arrays ordered by canonical group, then
// ascending landmark index within each group. HandFeatures is omitted
// entirely when no hand feature was defined for the frame.
type FrameRecord struct {
	Frame         int                `json:"frame"`
	Landmarks     [][2]float64       `json:"landmarks"`
	LandmarkTypes []string           `json:"landmark_types"`
	HandFeatures  map[string]float64 `json:"hand_features,omitempty"`
}

// Example is the fixed-length, feature-enriched representation of one
// recording. Immutable once built.
type Example struct {
	Frames []FrameRecord `json:"frames"`
	Sign   string        `json:"sign"`
}

// SignRecord accumulates every successfully processed example for one
// sign label. Persisted as one JSON document per sign.
type SignRecord struct {
	Sign     string    `json:"sign"`
	Examples []Example `json:"examples"`
}
