package pipeline

import "errors"

// Per-recording failures. All of them abort the current recording only;
// the builder converts them into a skip plus diagnostic and keeps going.
var (
	// ErrSmoothingParams reports invalid Savitzky-Golay parameters
	// (even window, or window not larger than the polynomial order).
	ErrSmoothingParams = errors.New("invalid smoothing parameters")

	// ErrWindowTooLarge reports a landmark group with fewer samples than
	// the smoothing window.
	ErrWindowTooLarge = errors.New("smoothing window exceeds available samples")

	// ErrEmptyRecording reports a recording with no usable observations
	// left after cleaning.
	ErrEmptyRecording = errors.New("no usable frames after cleaning")
)
