package signalplot

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ecgScale converts the recorder's millivolt ECG values to microvolts so
// that ECG and EEG read on comparable scales across their two axes.
const ecgScale = 1000.0

// Options configures the signal transforms applied between loading and
// figure assembly.
type Options struct {
	// Downsample keeps every Nth row, starting at row 0. 1 keeps
	// everything.
	Downsample int

	// Normalize rescales each trace independently so its minimum maps to
	// -1 and its maximum to +1.
	Normalize bool

	// IncludeECG and IncludeCM drop those channels entirely when false,
	// rather than merely hiding them.
	IncludeECG bool
	IncludeCM  bool

	// SampleRate in Hz is used to synthesize the time axis when the
	// recording has no time column. Zero or negative means raw row index.
	SampleRate float64
}

// DefaultOptions keeps every channel at full resolution.
func DefaultOptions() Options {
	return Options{Downsample: 1, IncludeECG: true, IncludeCM: true}
}

// Trace is one channel after transformation, ready for figure assembly.
type Trace struct {
	Name string
	Role Role
	X    []float64
	Y    []float64
}

// BuildTraces turns the classified table into the list of traces to plot.
// The output is a pure function of its inputs.
func BuildTraces(table *Table, roles map[string]Role, opt Options) ([]Trace, error) {
	if opt.Downsample < 1 {
		return nil, &ConfigError{Msg: "downsample stride must be >= 1"}
	}

	logger := logrus.WithField("tag", "Transform")

	x, err := timeAxis(table, roles, opt.SampleRate)
	if err != nil {
		return nil, err
	}
	x = Downsample(x, opt.Downsample)

	var traces []Trace
	for _, name := range table.Names() {
		role := roles[name]

		switch role {
		case RoleEEG:
			// Always plotted.
		case RoleECG:
			if !opt.IncludeECG {
				continue
			}
		case RoleCM:
			if !opt.IncludeCM {
				continue
			}
		default:
			continue
		}

		y, err := table.Floats(name)
		if err != nil {
			return nil, err
		}
		y = Downsample(y, opt.Downsample)

		if role == RoleECG {
			for i := range y {
				y[i] *= ecgScale
			}
		}

		if opt.Normalize {
			y = minMaxNormalize(y)
		}

		traces = append(traces, Trace{Name: name, Role: role, X: x, Y: y})
	}

	logger.WithFields(logrus.Fields{
		"traces": len(traces),
		"rows":   len(x),
		"stride": opt.Downsample,
	}).Debug("built traces")

	return traces, nil
}

// timeAxis returns the shared x values: the time column when the recording
// has one, otherwise row index over the sample rate.
func timeAxis(table *Table, roles map[string]Role, sampleRate float64) ([]float64, error) {
	for _, name := range table.Names() {
		if roles[name] == RoleTime {
			return table.Floats(name)
		}
	}

	x := make([]float64, table.Rows())
	for i := range x {
		if sampleRate > 0 {
			x[i] = float64(i) / sampleRate
		} else {
			x[i] = float64(i)
		}
	}
	return x, nil
}

// Downsample keeps values at indices 0, stride, 2*stride, ... A stride of 1
// returns a copy of the input.
func Downsample(values []float64, stride int) []float64 {
	if stride < 1 {
		stride = 1
	}

	kept := make([]float64, 0, (len(values)+stride-1)/stride)
	for i := 0; i < len(values); i += stride {
		kept = append(kept, values[i])
	}
	return kept
}

// minMaxNormalize linearly rescales values so the minimum maps to -1 and
// the maximum to +1. A constant trace (or one polluted by NaN) flattens to
// zero instead of dividing by zero.
func minMaxNormalize(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	if math.IsNaN(min) || math.IsNaN(max) || max == min {
		return out
	}

	for i, v := range values {
		out[i] = 2.0*(v-min)/(max-min) - 1.0
	}
	return out
}
