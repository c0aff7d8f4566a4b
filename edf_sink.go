package signalplot

import (
	"os"
	"time"

	"github.com/OpenPSG/edf"
	"github.com/sirupsen/logrus"
)

// The EDF standard caps a data record at 61440 bytes of 16-bit samples.
const maxSamplesPerRecord = 61440 / 2

// WriteEDF exports the transformed traces as an EDF recording, one signal
// per trace. sampleRate is the post-downsampling rate in Hz; when zero it
// is derived from the spacing of the time axis.
func WriteEDF(traces []Trace, path string, sampleRate float64, recordingID string) error {
	if len(traces) == 0 {
		return ErrNoPlottableChannels
	}

	rows := len(traces[0].X)
	if rows == 0 {
		return &ConfigError{Msg: "cannot export an empty recording to EDF"}
	}

	if sampleRate <= 0 {
		sampleRate = deriveSampleRate(traces[0].X)
	}

	samplesPerRecord := Min(rows, maxSamplesPerRecord/len(traces))
	if samplesPerRecord < 1 {
		samplesPerRecord = 1
	}

	hdr := edf.Header{
		Version:            edf.Version0,
		PatientID:          "X X X X",
		RecordingID:        recordingID,
		StartTime:          time.Now().UTC().Truncate(time.Second),
		DataRecordDuration: time.Duration(float64(samplesPerRecord) / sampleRate * float64(time.Second)),
		SignalCount:        len(traces),
		Signals:            make([]edf.SignalHeader, len(traces)),
	}

	for i, trace := range traces {
		pmin, pmax := trace.Y[0], trace.Y[0]
		for _, v := range trace.Y[1:] {
			if v < pmin {
				pmin = v
			}
			if v > pmax {
				pmax = v
			}
		}
		if pmax == pmin {
			// Calibration needs a non-empty physical range.
			pmax = pmin + 1
		}

		hdr.Signals[i] = edf.SignalHeader{
			Label:             trace.Name,
			PhysicalDimension: "uV",
			PhysicalMin:       pmin,
			PhysicalMax:       pmax,
			DigitalMin:        -32768,
			DigitalMax:        32767,
			SamplesPerRecord:  samplesPerRecord,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	writer, err := edf.Create(f, hdr)
	if err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}

	record := make([][]float64, len(traces))
	for start := 0; start < rows; start += samplesPerRecord {
		for i, trace := range traces {
			chunk := make([]float64, samplesPerRecord)
			for j := 0; j < samplesPerRecord; j++ {
				if start+j < rows {
					chunk[j] = trace.Y[start+j]
				} else {
					// Pad the final partial record with the last sample.
					chunk[j] = trace.Y[rows-1]
				}
			}
			record[i] = chunk
		}

		if err := writer.WriteRecord(record); err != nil {
			return &FileError{Op: "write", Path: path, Err: err}
		}
	}

	if err := writer.Close(); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"signals": len(traces),
		"rows":    rows,
	}).Info("saved EDF export")

	return nil
}

func deriveSampleRate(x []float64) float64 {
	if len(x) >= 2 {
		dt := x[1] - x[0]
		if dt > 0 {
			return 1.0 / dt
		}
	}
	return 1.0
}
