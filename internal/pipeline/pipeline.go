// Package pipeline transforms one raw landmark recording into a clean,
// fixed-length, feature-enriched example. Stages are pure functions
// composed strictly in sequence; each consumes the previous stage's
// output and returns a new value, so no stage aliases another's data.
package pipeline

import "github.com/asl-graph/databuilder/internal/landmark"

// Params configures the per-recording transformation.
type Params struct {
	// TargetFrames is the fixed frame count every example is resampled to.
	TargetFrames int
	// SmoothingWindow is the Savitzky-Golay window length (odd).
	SmoothingWindow int
	// SmoothingPolyOrder is the fit polynomial order (< SmoothingWindow).
	SmoothingPolyOrder int
}

// Pipeline runs the full stage sequence for one recording at a time.
// Recordings never share state, so a single Pipeline value is safe to
// reuse across recordings.
type Pipeline struct {
	params Params
}

// New returns a pipeline with the given parameters. Smoothing parameters
// are validated per recording, not here, so that an invalid configuration
// surfaces as a per-recording skip rather than a startup failure.
func New(params Params) *Pipeline {
	return &Pipeline{params: params}
}

// Process transforms one recording's raw rows into an output example.
//
// Stage order: drop empty frames, select canonical landmarks, fill
// missing values, drop depth, centre on the centroid, smooth, resample to
// the target length, derive hand geometry, format.
func (p *Pipeline) Process(rows []landmark.Row, sign string) (landmark.Example, error) {
	rows = DropEmptyFrames(rows)
	obs := SelectCanonical(rows)
	obs = FillMissing(obs)
	if len(obs) == 0 {
		return landmark.Example{}, ErrEmptyRecording
	}
	obs = DropDepth(obs)
	obs = Center(obs)

	obs, err := Smooth(obs, p.params.SmoothingWindow, p.params.SmoothingPolyOrder)
	if err != nil {
		return landmark.Example{}, err
	}
	obs = Resample(obs, p.params.TargetFrames)

	feats := ExtractHandFeatures(obs)
	return FormatExample(obs, feats, sign), nil
}
