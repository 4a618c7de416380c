package landmark

// Row is one raw observation row as supplied by a recording source,
// before landmark selection. RowID encodes "<prefix>-<group>-<index>";
// coordinates use NaN for missing values.
type Row struct {
	RowID string
	Frame int
	X     float64
	Y     float64
	Z     float64
}
