package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// manifestName and labelMapName follow the original dataset layout.
const (
	manifestName = "train.csv"
	labelMapName = "sign_to_prediction_index_map.json"
)

// CSVDataset reads a dataset directory: a train.csv manifest mapping
// recordings to signs, a JSON label map, and one landmark CSV per
// recording (header row_id,frame,type,landmark_index,x,y,z; empty
// coordinate cells mean missing).
type CSVDataset struct {
	baseDir  string
	bySign   map[string][]string // sign -> recording paths, manifest order
	signs    []string
	labelMap map[string]int
}

// OpenCSV loads the manifest and label map from baseDir.
func OpenCSV(baseDir string) (*CSVDataset, error) {
	ds := &CSVDataset{
		baseDir: baseDir,
		bySign:  make(map[string][]string),
	}
	if err := ds.loadManifest(filepath.Join(baseDir, manifestName)); err != nil {
		return nil, err
	}
	if err := ds.loadLabelMap(filepath.Join(baseDir, labelMapName)); err != nil {
		return nil, err
	}
	return ds, nil
}

func (ds *CSVDataset) loadManifest(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("manifest %s is empty", path)
	}
	cols := columnIndex(records[0])
	pathCol, ok := cols["path"]
	if !ok {
		return fmt.Errorf("manifest %s has no path column", path)
	}
	signCol, ok := cols["sign"]
	if !ok {
		return fmt.Errorf("manifest %s has no sign column", path)
	}

	for _, rec := range records[1:] {
		sign := rec[signCol]
		if _, seen := ds.bySign[sign]; !seen {
			ds.signs = append(ds.signs, sign)
		}
		ds.bySign[sign] = append(ds.bySign[sign], rec[pathCol])
	}
	sort.Strings(ds.signs)
	return nil
}

func (ds *CSVDataset) loadLabelMap(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open label map: %w", err)
	}
	if err := json.Unmarshal(data, &ds.labelMap); err != nil {
		return fmt.Errorf("parse label map: %w", err)
	}
	return nil
}

// Signs lists the manifest's signs in sorted order.
func (ds *CSVDataset) Signs() ([]string, error) {
	return append([]string(nil), ds.signs...), nil
}

// Recordings returns up to max recording paths for a sign, in manifest
// order.
func (ds *CSVDataset) Recordings(sign string, max int) ([]string, error) {
	paths := ds.bySign[sign]
	if max > 0 && len(paths) > max {
		paths = paths[:max]
	}
	return append([]string(nil), paths...), nil
}

// Label resolves a sign to its class id.
func (ds *CSVDataset) Label(sign string) (int, error) {
	label, ok := ds.labelMap[sign]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSign, sign)
	}
	return label, nil
}

// Load reads one recording's landmark CSV, resolved relative to the
// dataset directory.
func (ds *CSVDataset) Load(recordingID string) ([]landmark.Row, error) {
	f, err := os.Open(filepath.Join(ds.baseDir, recordingID))
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read recording %s: %w", recordingID, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	cols := columnIndex(records[0])
	for _, name := range []string{"row_id", "frame", "x", "y"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("recording %s has no %s column", recordingID, name)
		}
	}

	rows := make([]landmark.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		frame, err := strconv.Atoi(rec[cols["frame"]])
		if err != nil {
			return nil, fmt.Errorf("recording %s row %d: bad frame: %w", recordingID, i+1, err)
		}
		row := landmark.Row{
			RowID: rec[cols["row_id"]],
			Frame: frame,
			X:     parseCell(rec, cols, "x"),
			Y:     parseCell(rec, cols, "y"),
			Z:     parseCell(rec, cols, "z"),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close is a no-op for the CSV backend.
func (ds *CSVDataset) Close() error { return nil }

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

// parseCell reads an optional float column; missing columns and empty or
// unparseable cells all map to NaN.
func parseCell(rec []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(rec) || rec[i] == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
