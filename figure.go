package signalplot

import (
	"errors"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrNoPlottableChannels is returned when classification plus the exclusion
// flags leave nothing to draw.
var ErrNoPlottableChannels = errors.New("no plottable channels detected")

// Set3-style qualitative palette for the EEG channels.
var eegPalette = []string{
	"#8DD3C7", "#FFFFB3", "#BEBADA", "#FB8072", "#80B1D3", "#FDB462",
	"#B3DE69", "#FCCDE5", "#D9D9D9", "#BC80BD", "#CCEBC5", "#FFED6F",
}

var ecgPalette = []string{"#FF6B6B", "#4ECDC4"}

const cmColor = "#9B59B6"

// y-axis indices by role. The figure always declares all three axes so the
// indices stay stable regardless of which roles are present.
const (
	axisEEG = 0
	axisECG = 1
	axisCM  = 2
)

// FigureOptions controls figure-level presentation.
type FigureOptions struct {
	Title      string
	XLabel     string
	Normalized bool
	PageTitle  string
}

// BuildFigure maps the traces onto an interactive line chart: EEG on the
// primary y-axis, ECG on the secondary, CM on the tertiary, with a range
// slider and wheel zoom on the shared time axis. Legend toggling, zoom and
// pan all belong to the charting library.
func BuildFigure(traces []Trace, fo FigureOptions) (*charts.Line, error) {
	if len(traces) == 0 {
		return nil, ErrNoPlottableChannels
	}

	line := charts.NewLine()

	eegLabel, ecgLabel, cmLabel := "EEG (µV)", "ECG (µV)", "CM"
	if fo.Normalized {
		eegLabel, ecgLabel, cmLabel = "EEG (normalized)", "ECG (normalized)", "CM (normalized)"
	}

	xLabel := fo.XLabel
	if xLabel == "" {
		xLabel = "Time (s)"
	}
	pageTitle := fo.PageTitle
	if pageTitle == "" {
		pageTitle = fo.Title
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle,
			Width:     "1400px",
			Height:    "720px",
		}),
		charts.WithTitleOpts(opts.Title{Title: fo.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel, Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: eegLabel, Type: "value", Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100, XAxisIndex: []int{0}},
			opts.DataZoom{Type: "inside", Start: 0, End: 100, XAxisIndex: []int{0}},
		),
	)

	line.ExtendYAxis(
		opts.YAxis{Name: ecgLabel, Type: "value", Scale: opts.Bool(true)},
		opts.YAxis{Name: cmLabel, Type: "value", Scale: opts.Bool(true)},
	)

	eegCount, ecgCount := 0, 0
	for _, trace := range traces {
		var axis int
		var color string
		var width, opacity float32

		switch trace.Role {
		case RoleEEG:
			axis = axisEEG
			color = eegPalette[eegCount%len(eegPalette)]
			width, opacity = 0.8, 0.6
			eegCount++
		case RoleECG:
			axis = axisECG
			color = ecgPalette[ecgCount%len(ecgPalette)]
			width, opacity = 1, 0.9
			ecgCount++
		case RoleCM:
			axis = axisCM
			color = cmColor
			width, opacity = 1, 0.8
		default:
			continue
		}

		data := make([]opts.LineData, len(trace.X))
		for i := range trace.X {
			data[i] = opts.LineData{Value: []interface{}{trace.X[i], trace.Y[i]}}
		}

		line.AddSeries(trace.Name, data,
			charts.WithLineChartOpts(opts.LineChart{
				YAxisIndex: axis,
				ShowSymbol: opts.Bool(false),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color:   color,
				Width:   width,
				Opacity: opacity,
			}),
		)
	}

	if len(line.MultiSeries) == 0 {
		return nil, ErrNoPlottableChannels
	}

	return line, nil
}
