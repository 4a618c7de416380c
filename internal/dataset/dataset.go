// Package dataset supplies the pipeline's input collaborators: the sign
// manifest, the sign-to-label map and per-recording observation loading.
//
// Two backends exist: a directory of CSV files mirroring the original
// dataset layout (train.csv + sign_to_prediction_index_map.json + one
// landmark file per recording), and a single SQLite database file.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// ErrUnknownSign reports a sign with no entry in the label map. A lookup
// miss is recoverable: the recording is skipped, not the run.
var ErrUnknownSign = errors.New("sign not present in label map")

// Dataset is the full input surface the builder consumes.
type Dataset interface {
	Index
	LabelMap
	Source

	Close() error
}

// Index enumerates signs and their recordings.
type Index interface {
	// Signs lists every sign the dataset knows, in stable order.
	Signs() ([]string, error)
	// Recordings returns an ordered list of at most max recording IDs
	// for the sign. max <= 0 means no bound.
	Recordings(sign string, max int) ([]string, error)
}

// LabelMap resolves a sign name to its integer class id.
type LabelMap interface {
	// Label returns the class id for a sign, or an error wrapping
	// ErrUnknownSign.
	Label(sign string) (int, error)
}

// Source loads the raw observation rows of one recording.
type Source interface {
	Load(recordingID string) ([]landmark.Row, error)
}

// Open selects a backend from the path: a .db file opens the SQLite
// backend, anything else is treated as a CSV dataset directory.
func Open(path string) (Dataset, error) {
	if strings.HasSuffix(path, ".db") {
		return OpenSQLite(path)
	}
	ds, err := OpenCSV(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	return ds, nil
}
