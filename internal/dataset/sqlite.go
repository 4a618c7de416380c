package dataset

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/asl-graph/databuilder/internal/landmark"
)

// SQLiteDataset reads a dataset packed into a single SQLite file. Schema:
//
//	recordings(id, sign)
//	observations(recording_id, row_id, frame, type, landmark_index, x, y, z)
//	labels(sign, label)
//
// NULL coordinate columns mean missing values.
type SQLiteDataset struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a dataset database.
func OpenSQLite(path string) (*SQLiteDataset, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS recordings (
			id    TEXT PRIMARY KEY,
			sign  TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS observations (
			recording_id    TEXT NOT NULL,
			row_id          TEXT NOT NULL,
			frame           INTEGER NOT NULL,
			type            TEXT NOT NULL,
			landmark_index  INTEGER NOT NULL,
			x               DOUBLE,
			y               DOUBLE,
			z               DOUBLE
		);
		CREATE INDEX IF NOT EXISTS idx_observations_recording
			ON observations(recording_id);
		CREATE TABLE IF NOT EXISTS labels (
			sign   TEXT PRIMARY KEY,
			label  INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create dataset schema: %w", err)
	}
	return &SQLiteDataset{db: db}, nil
}

// Signs lists the distinct signs with recordings, sorted.
func (ds *SQLiteDataset) Signs() ([]string, error) {
	rows, err := ds.db.Query(`SELECT DISTINCT sign FROM recordings ORDER BY sign`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		signs = append(signs, s)
	}
	return signs, rows.Err()
}

// Recordings returns up to max recording IDs for a sign, ordered by id.
func (ds *SQLiteDataset) Recordings(sign string, max int) ([]string, error) {
	limit := max
	if limit <= 0 {
		limit = -1 // no LIMIT in sqlite
	}
	rows, err := ds.db.Query(
		`SELECT id FROM recordings WHERE sign = ? ORDER BY id LIMIT ?`, sign, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Label resolves a sign to its class id.
func (ds *SQLiteDataset) Label(sign string) (int, error) {
	var label int
	err := ds.db.QueryRow(`SELECT label FROM labels WHERE sign = ?`, sign).Scan(&label)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSign, sign)
	}
	if err != nil {
		return 0, err
	}
	return label, nil
}

// Load reads one recording's observation rows ordered by frame and
// landmark index.
func (ds *SQLiteDataset) Load(recordingID string) ([]landmark.Row, error) {
	rows, err := ds.db.Query(`
		SELECT row_id, frame, x, y, z
		FROM observations
		WHERE recording_id = ?
		ORDER BY frame, landmark_index`, recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []landmark.Row
	for rows.Next() {
		var (
			r       landmark.Row
			x, y, z sql.NullFloat64
		)
		if err := rows.Scan(&r.RowID, &r.Frame, &x, &y, &z); err != nil {
			return nil, err
		}
		r.X = nullable(x)
		r.Y = nullable(y)
		r.Z = nullable(z)
		out = append(out, r)
	}
	return out, rows.Err()
}

// AddRecording registers a recording under a sign. Used by dataset import
// tooling and tests.
func (ds *SQLiteDataset) AddRecording(id, sign string) error {
	_, err := ds.db.Exec(`INSERT INTO recordings (id, sign) VALUES (?, ?)`, id, sign)
	return err
}

// AddObservations inserts raw rows for a recording. The group and
// landmark index columns are derived from each row's identifier.
func (ds *SQLiteDataset) AddObservations(recordingID string, rows []landmark.Row) error {
	tx, err := ds.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO observations
			(recording_id, row_id, frame, type, landmark_index, x, y, z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		group, index, err := landmark.ParseRowID(r.RowID)
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = stmt.Exec(recordingID, r.RowID, r.Frame, string(group), index,
			toNull(r.X), toNull(r.Y), toNull(r.Z))
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SetLabel records a sign's class id.
func (ds *SQLiteDataset) SetLabel(sign string, label int) error {
	_, err := ds.db.Exec(
		`INSERT OR REPLACE INTO labels (sign, label) VALUES (?, ?)`, sign, label)
	return err
}

// Close releases the database handle.
func (ds *SQLiteDataset) Close() error {
	return ds.db.Close()
}

func nullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func toNull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
