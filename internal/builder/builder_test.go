package builder

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asl-graph/databuilder/internal/dataset"
	"github.com/asl-graph/databuilder/internal/landmark"
	"github.com/asl-graph/databuilder/internal/monitoring"
	"github.com/asl-graph/databuilder/internal/pipeline"
)

// fakeDataset is an in-memory Dataset for builder tests.
type fakeDataset struct {
	signs      map[string][]string // sign -> recording IDs
	labels     map[string]int
	recordings map[string][]landmark.Row
}

func (f *fakeDataset) Signs() ([]string, error) {
	var signs []string
	for s := range f.signs {
		signs = append(signs, s)
	}
	return signs, nil
}

func (f *fakeDataset) Recordings(sign string, max int) ([]string, error) {
	ids := f.signs[sign]
	if max > 0 && len(ids) > max {
		ids = ids[:max]
	}
	return ids, nil
}

func (f *fakeDataset) Label(sign string) (int, error) {
	label, ok := f.labels[sign]
	if !ok {
		return 0, fmt.Errorf("%w: %q", dataset.ErrUnknownSign, sign)
	}
	return label, nil
}

func (f *fakeDataset) Load(id string) ([]landmark.Row, error) {
	rows, ok := f.recordings[id]
	if !ok {
		return nil, fmt.Errorf("no recording %q", id)
	}
	return rows, nil
}

func (f *fakeDataset) Close() error { return nil }

// memSink collects written records instead of touching the filesystem.
type memSink struct {
	records []landmark.SignRecord
}

func (s *memSink) Write(rec landmark.SignRecord) (string, error) {
	s.records = append(s.records, rec)
	return "mem://" + rec.Sign, nil
}

func goodRecording(nFrames int) []landmark.Row {
	var rows []landmark.Row
	for f := 0; f < nFrames; f++ {
		rows = append(rows, landmark.Row{
			RowID: fmt.Sprintf("%d-right_hand-0", f),
			Frame: f, X: 0.2 + 0.01*float64(f), Y: 0.5,
		})
	}
	return rows
}

func emptyRecording(nFrames int) []landmark.Row {
	nan := math.NaN()
	var rows []landmark.Row
	for f := 0; f < nFrames; f++ {
		rows = append(rows, landmark.Row{
			RowID: fmt.Sprintf("%d-right_hand-0", f),
			Frame: f, X: nan, Y: nan,
		})
	}
	return rows
}

func muteLogs(t *testing.T) {
	t.Helper()
	monitoring.SetLogger(func(string, ...interface{}) {})
	t.Cleanup(func() { monitoring.SetLogger(nil) })
}

func defaultParams() pipeline.Params {
	return pipeline.Params{TargetFrames: 50, SmoothingWindow: 5, SmoothingPolyOrder: 3}
}

func TestBuilderRun(t *testing.T) {
	muteLogs(t)
	ds := &fakeDataset{
		signs:  map[string][]string{"wave": {"rec-1", "rec-2"}},
		labels: map[string]int{"wave": 244},
		recordings: map[string][]landmark.Row{
			"rec-1": goodRecording(30),
			"rec-2": goodRecording(80),
		},
	}
	out := &memSink{}

	b := New(ds, out, defaultParams(), Options{})
	summary, err := b.Run()
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Skipped)
	require.Len(t, summary.Signs, 1)
	assert.Equal(t, "mem://wave", summary.Signs[0].OutputPath)

	require.Len(t, out.records, 1)
	require.Len(t, out.records[0].Examples, 2)
	for _, ex := range out.records[0].Examples {
		assert.Equal(t, "wave", ex.Sign)
		assert.Len(t, ex.Frames, 50)
	}
}

func TestBuilderUnknownSignSkips(t *testing.T) {
	muteLogs(t)
	ds := &fakeDataset{
		signs:  map[string][]string{"wave": {"rec-1"}, "mystery": {"rec-9"}},
		labels: map[string]int{"wave": 244},
		recordings: map[string][]landmark.Row{
			"rec-1": goodRecording(30),
			"rec-9": goodRecording(30),
		},
	}
	out := &memSink{}

	b := New(ds, out, defaultParams(), Options{Signs: []string{"mystery", "wave"}})
	summary, err := b.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	// Both signs still produce a record; the unknown one is empty.
	require.Len(t, out.records, 2)
	assert.Empty(t, out.records[0].Examples)
	assert.Len(t, out.records[1].Examples, 1)
}

// An invalid smoothing configuration skips every recording but never
// aborts the run, and the empty record is still written.
func TestBuilderBadSmoothingParams(t *testing.T) {
	muteLogs(t)
	ds := &fakeDataset{
		signs:  map[string][]string{"wave": {"rec-1", "rec-2"}},
		labels: map[string]int{"wave": 244},
		recordings: map[string][]landmark.Row{
			"rec-1": goodRecording(30),
			"rec-2": goodRecording(40),
		},
	}
	out := &memSink{}

	params := pipeline.Params{TargetFrames: 50, SmoothingWindow: 4, SmoothingPolyOrder: 3}
	b := New(ds, out, params, Options{})
	summary, err := b.Run()
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 2, summary.Skipped)
	require.Len(t, out.records, 1)
	assert.Empty(t, out.records[0].Examples)
	assert.Equal(t, "wave", out.records[0].Sign)
}

// An empty recording is skipped while its sibling is still processed.
func TestBuilderEmptyRecordingSkips(t *testing.T) {
	muteLogs(t)
	ds := &fakeDataset{
		signs:  map[string][]string{"wave": {"rec-1", "rec-2"}},
		labels: map[string]int{"wave": 244},
		recordings: map[string][]landmark.Row{
			"rec-1": emptyRecording(10),
			"rec-2": goodRecording(30),
		},
	}
	out := &memSink{}

	b := New(ds, out, defaultParams(), Options{})
	summary, err := b.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, out.records, 1)
	assert.Len(t, out.records[0].Examples, 1)
}

func TestBuilderMaxFilesPerSign(t *testing.T) {
	muteLogs(t)
	ds := &fakeDataset{
		signs:  map[string][]string{"wave": {"rec-1", "rec-2", "rec-3"}},
		labels: map[string]int{"wave": 244},
		recordings: map[string][]landmark.Row{
			"rec-1": goodRecording(30),
			"rec-2": goodRecording(30),
			"rec-3": goodRecording(30),
		},
	}
	out := &memSink{}

	b := New(ds, out, defaultParams(), Options{MaxFilesPerSign: 2})
	summary, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrap: %w", dataset.ErrUnknownSign), "lookup-miss"},
		{pipeline.ErrEmptyRecording, "empty-result"},
		{pipeline.ErrSmoothingParams, "configuration"},
		{pipeline.ErrWindowTooLarge, "insufficient-data"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
