package signalplot

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/sirupsen/logrus"
)

// Pipeline bundles one full Loader → Classifier → Transformer → Assembler
// pass over a recording. Watch mode re-runs the same pipeline on every
// change to the input file; each run is independent.
type Pipeline struct {
	Path    string
	Layout  *Layout
	Options Options
	Figure  FigureOptions
}

// Result is the output of a single pipeline run.
type Result struct {
	Table    *Table
	Roles    map[string]Role
	Traces   []Trace
	Figure   *charts.Line
	Metadata Metadata
}

// Run executes the pipeline once.
func (p *Pipeline) Run() (*Result, error) {
	layout := p.Layout
	if layout == nil {
		layout = DefaultLayout()
	}

	table, err := LoadTable(p.Path)
	if err != nil {
		return nil, err
	}

	roles := layout.Classify(table)
	logrus.WithFields(logrus.Fields{
		"tag":      "Pipeline",
		"channels": PlottableChannels(table, roles),
	}).Debug("classified columns")

	traces, err := BuildTraces(table, roles, p.Options)
	if err != nil {
		return nil, err
	}

	figure, err := BuildFigure(traces, p.Figure)
	if err != nil {
		if err == ErrNoPlottableChannels {
			logrus.WithField("columns", table.Names()).
				Error("no plottable channels detected, check the CSV headers")
		}
		return nil, err
	}

	return &Result{
		Table:    table,
		Roles:    roles,
		Traces:   traces,
		Figure:   figure,
		Metadata: NewMetadata(p.Path, table, roles, p.Options, p.Figure),
	}, nil
}
