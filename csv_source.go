package signalplot

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// The pipeline starts with a Table loaded from disk, which the Layout
// classifies into channel roles. BuildTraces then applies the configured
// transforms and BuildFigure maps the traces onto the chart axes.

// commentMarker prefixes metadata lines in recorder exports. Lines starting
// with it are skipped wherever they appear.
const commentMarker = '#'

// ReadTable parses CSV input into a Table. The first non-comment line is the
// header; every following line must carry the same number of fields.
func ReadTable(input io.Reader) (*Table, error) {
	logger := logrus.WithField("tag", "CsvSource")

	csvReader := csv.NewReader(input)
	csvReader.Comment = commentMarker
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, &ParseError{Msg: "input contains no header row"}
	}
	if err != nil {
		return nil, wrapCsvError(err)
	}

	table, err := NewTable(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// encoding/csv enforces a consistent field count against the
			// header, so a short or long row surfaces here.
			logger.WithError(err).Error("unable to read CSV row")
			return nil, wrapCsvError(err)
		}

		if err := table.appendRow(record); err != nil {
			return nil, err
		}
	}

	logger.WithFields(logrus.Fields{
		"columns": len(table.Names()),
		"rows":    table.Rows(),
	}).Debug("loaded table")

	return table, nil
}

func wrapCsvError(err error) error {
	if parseErr, ok := err.(*csv.ParseError); ok {
		return &ParseError{
			Line: parseErr.Line,
			Msg:  parseErr.Err.Error(),
			Err:  err,
		}
	}
	return &ParseError{Msg: err.Error(), Err: err}
}

// LoadTable reads a CSV recording from disk.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return ReadTable(f)
}
