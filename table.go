package signalplot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is an ordered set of equally sized named columns. Row order is the
// temporal order of the recording. Cells are kept as raw strings so that
// textual columns (Event, Comments and friends) survive loading; numeric
// interpretation happens per column via Floats.
type Table struct {
	names []string
	cols  [][]string
	index map[string]int
}

func NewTable(names []string) (*Table, error) {
	index := make(map[string]int, len(names))
	cols := make([][]string, len(names))

	for i, name := range names {
		if _, ok := index[name]; ok {
			return nil, &ParseError{Msg: fmt.Sprintf("duplicate column name %q", name)}
		}
		index[name] = i
		cols[i] = []string{}
	}

	return &Table{names: names, cols: cols, index: index}, nil
}

// Names returns the column names in file order.
func (t *Table) Names() []string { return t.names }

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

func (t *Table) appendRow(fields []string) error {
	if len(fields) != len(t.names) {
		return &ParseError{Msg: fmt.Sprintf("expected %d fields, got %d", len(t.names), len(fields))}
	}
	for i, value := range fields {
		t.cols[i] = append(t.cols[i], value)
	}
	return nil
}

// Column returns the raw cells of the named column, or nil if the column
// does not exist.
func (t *Table) Column(name string) []string {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Floats parses the named column as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	cells := t.Column(name)
	if cells == nil {
		return nil, &ParseError{Msg: fmt.Sprintf("no such column %q", name)}
	}

	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, &ParseError{
				Msg: fmt.Sprintf("column %q row %d: cannot parse %q as a number", name, i, cell),
				Err: err,
			}
		}
		values[i] = v
	}

	return values, nil
}

// IsNumeric reports whether every cell of the named column parses as a
// float64. Empty columns count as numeric.
func (t *Table) IsNumeric(name string) bool {
	cells := t.Column(name)
	if cells == nil {
		return false
	}
	for _, cell := range cells {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return false
		}
	}
	return true
}

// WriteCSV writes the table back out as comment-free CSV, header first. For
// input without comment lines this is the lossless inverse of ReadTable.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.names); err != nil {
		return err
	}

	row := make([]string, len(t.names))
	for r := 0; r < t.Rows(); r++ {
		for c := range t.cols {
			row[c] = t.cols[c][r]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
