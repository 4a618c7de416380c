// Package sink persists processed sign records. One JSON document per
// sign, written once after every recording for that sign has been
// processed.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// Sink accepts one finished SignRecord at a time.
type Sink interface {
	// Write persists the record and returns the destination path.
	Write(rec landmark.SignRecord) (string, error)
}

// subDir matches the original output layout.
const subDir = "spatio-temporal"

// JSONSink writes each sign record to <dir>/spatio-temporal/<sign>.json
// with two-space indentation.
type JSONSink struct {
	dir string
}

// NewJSON returns a sink rooted at dir.
func NewJSON(dir string) *JSONSink {
	return &JSONSink{dir: dir}
}

func (s *JSONSink) Write(rec landmark.SignRecord) (string, error) {
	outDir := filepath.Join(s.dir, subDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sign %s: %w", rec.Sign, err)
	}
	path := filepath.Join(outDir, rec.Sign+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write sign %s: %w", rec.Sign, err)
	}
	return path, nil
}
