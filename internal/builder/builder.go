// Package builder orchestrates a build run: it enumerates signs and their
// recordings, runs the transformation pipeline per recording, accumulates
// the resulting examples per sign and hands each finished sign record to
// the output sink.
//
// Failures are contained at the per-recording boundary: an unknown sign,
// an empty recording or a smoothing error skips that one recording with a
// diagnostic and processing continues with its siblings.
package builder

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/asl-graph/databuilder/internal/dataset"
	"github.com/asl-graph/databuilder/internal/landmark"
	"github.com/asl-graph/databuilder/internal/monitoring"
	"github.com/asl-graph/databuilder/internal/pipeline"
	"github.com/asl-graph/databuilder/internal/sink"
)

// Options control a build run.
type Options struct {
	// Signs restricts the run; empty means every sign the dataset knows.
	Signs []string
	// MaxFilesPerSign bounds recordings per sign; <= 0 means unbounded.
	MaxFilesPerSign int
	// Progress shows a per-sign progress bar on stderr.
	Progress bool
}

// SignSummary reports one sign's outcome.
type SignSummary struct {
	Sign       string
	Processed  int
	Skipped    int
	OutputPath string
}

// Summary reports a whole run, tagged with a unique run ID for log
// correlation.
type Summary struct {
	RunID     string
	Signs     []SignSummary
	Processed int
	Skipped   int
}

// Builder wires the dataset, pipeline and sink together.
type Builder struct {
	ds   dataset.Dataset
	out  sink.Sink
	pipe *pipeline.Pipeline
	opts Options
}

// New returns a builder over the given collaborators.
func New(ds dataset.Dataset, out sink.Sink, params pipeline.Params, opts Options) *Builder {
	return &Builder{
		ds:   ds,
		out:  out,
		pipe: pipeline.New(params),
		opts: opts,
	}
}

// Run processes every selected sign and returns the run summary. Only
// dataset or sink I/O failures abort the run; per-recording pipeline
// failures are skips.
func (b *Builder) Run() (*Summary, error) {
	signs := b.opts.Signs
	if len(signs) == 0 {
		var err error
		signs, err = b.ds.Signs()
		if err != nil {
			return nil, fmt.Errorf("list signs: %w", err)
		}
	}

	summary := &Summary{RunID: uuid.NewString()}
	for _, sign := range signs {
		signSummary, err := b.processSign(sign)
		if err != nil {
			return nil, err
		}
		summary.Signs = append(summary.Signs, *signSummary)
		summary.Processed += signSummary.Processed
		summary.Skipped += signSummary.Skipped
	}
	return summary, nil
}

func (b *Builder) processSign(sign string) (*SignSummary, error) {
	recordings, err := b.ds.Recordings(sign, b.opts.MaxFilesPerSign)
	if err != nil {
		return nil, fmt.Errorf("list recordings for %s: %w", sign, err)
	}
	monitoring.Logf("sign %s: %d recordings", sign, len(recordings))

	var bar *progressbar.ProgressBar
	if b.opts.Progress {
		bar = progressbar.NewOptions(len(recordings),
			progressbar.OptionSetDescription(fmt.Sprintf("cleaning %s", sign)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
	}

	record := landmark.SignRecord{Sign: sign, Examples: []landmark.Example{}}
	out := &SignSummary{Sign: sign}
	for _, id := range recordings {
		if bar != nil {
			bar.Add(1)
		}
		example, err := b.processRecording(sign, id)
		if err != nil {
			out.Skipped++
			monitoring.Logf("sign %s: skipping %s (%s): %v", sign, id, Classify(err), err)
			continue
		}
		record.Examples = append(record.Examples, example)
		out.Processed++
	}
	if bar != nil {
		bar.Finish()
	}
	if out.Processed == 0 {
		monitoring.Logf("sign %s: no examples produced", sign)
	}

	path, err := b.out.Write(record)
	if err != nil {
		return nil, fmt.Errorf("persist sign %s: %w", sign, err)
	}
	out.OutputPath = path
	return out, nil
}

// processRecording runs the pipeline for one recording. Every returned
// error is a per-recording skip, never fatal to the run.
func (b *Builder) processRecording(sign, id string) (landmark.Example, error) {
	if _, err := b.ds.Label(sign); err != nil {
		return landmark.Example{}, err
	}
	rows, err := b.ds.Load(id)
	if err != nil {
		return landmark.Example{}, err
	}
	return b.pipe.Process(rows, sign)
}

// Classify names the skip category of a per-recording error, for
// diagnostics.
func Classify(err error) string {
	switch {
	case errors.Is(err, dataset.ErrUnknownSign):
		return "lookup-miss"
	case errors.Is(err, pipeline.ErrEmptyRecording):
		return "empty-result"
	case errors.Is(err, pipeline.ErrSmoothingParams):
		return "configuration"
	case errors.Is(err, pipeline.ErrWindowTooLarge):
		return "insufficient-data"
	default:
		return "error"
	}
}
