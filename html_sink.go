package signalplot

import (
	"bytes"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/sirupsen/logrus"
)

// RenderHTML serializes the figure into a self-contained HTML page.
func RenderHTML(figure *charts.Line) ([]byte, error) {
	var buf bytes.Buffer
	if err := figure.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML writes the figure as a standalone HTML artifact.
func WriteHTML(figure *charts.Line, path string) error {
	page, err := RenderHTML(figure)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}

	if _, err := f.Write(page); err != nil {
		f.Close()
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}

	logrus.WithField("path", path).Info("saved interactive HTML")
	return nil
}

// WriteTee dumps the loaded table back out as CSV, for piping the cleaned
// recording into other tools.
func WriteTee(table *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}

	if err := table.WriteCSV(f); err != nil {
		f.Close()
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
