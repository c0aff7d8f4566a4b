package signalplot

import "strings"

// Role tags each column of a recording with how it is plotted.
type Role int

const (
	// RoleEEG channels carry microvolt amplitudes and go on the primary
	// y-axis. Any numeric column not matched by another rule defaults to
	// EEG: recorder montages name electrodes freely (Fz, Cz, P3, ...), so
	// there is no closed list to match against. This is permissive on
	// purpose; an unrecognized non-EEG sensor would be mis-plotted rather
	// than rejected.
	RoleEEG Role = iota

	// RoleECG channels carry millivolt amplitudes (converted to microvolts
	// before plotting) and go on the secondary y-axis.
	RoleECG

	// RoleCM is the common-mode reference, plotted on its own tertiary axis
	// because its amplitude dwarfs the signal channels.
	RoleCM

	// RoleTime is the shared x-axis column, in seconds.
	RoleTime

	// RoleIgnored columns (trigger/status/event bookkeeping) never reach
	// the figure.
	RoleIgnored
)

func (r Role) String() string {
	switch r {
	case RoleEEG:
		return "eeg"
	case RoleECG:
		return "ecg"
	case RoleCM:
		return "cm"
	case RoleTime:
		return "time"
	case RoleIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Layout holds the column naming conventions of the recorder. The zero
// value is not useful; start from DefaultLayout and override per file via
// LoadLayout.
type Layout struct {
	// TimeColumn is the shared time axis, in seconds.
	TimeColumn string `yaml:"time_column"`

	// CMColumn is the common-mode reference channel.
	CMColumn string `yaml:"cm_column"`

	// ECGNames and ECGPrefixes identify the ECG channels. The recorder
	// exports them as X1:LEOG and X2:REOG; explicitly named ECG* columns
	// are matched too.
	ECGNames    []string `yaml:"ecg_names"`
	ECGPrefixes []string `yaml:"ecg_prefixes"`

	// IgnoreNames and IgnorePrefixes identify bookkeeping columns that are
	// never plotted.
	IgnoreNames    []string `yaml:"ignore_names"`
	IgnorePrefixes []string `yaml:"ignore_prefixes"`
}

// DefaultLayout matches the recorder's stock CSV export.
func DefaultLayout() *Layout {
	return &Layout{
		TimeColumn:  "Time",
		CMColumn:    "CM",
		ECGNames:    []string{"X1", "X2"},
		ECGPrefixes: []string{"X1:", "X2:", "ECG"},
		IgnoreNames: []string{
			"Trigger", "Time_Offset", "ADC_Status", "ADC_Sequence",
			"Event", "Comments",
		},
		IgnorePrefixes: []string{"X3", "x3"},
	}
}

// Classify assigns exactly one Role to every column of the table. The same
// header set always yields the same mapping.
func (l *Layout) Classify(table *Table) map[string]Role {
	roles := make(map[string]Role, len(table.Names()))

	for _, name := range table.Names() {
		roles[name] = l.classifyColumn(name, table)
	}

	return roles
}

func (l *Layout) classifyColumn(name string, table *Table) Role {
	if name == l.TimeColumn {
		return RoleTime
	}

	for _, ignored := range l.IgnoreNames {
		if name == ignored {
			return RoleIgnored
		}
	}
	for _, prefix := range l.IgnorePrefixes {
		if strings.HasPrefix(name, prefix) {
			return RoleIgnored
		}
	}

	if name == l.CMColumn {
		return RoleCM
	}

	for _, ecg := range l.ECGNames {
		if name == ecg {
			return RoleECG
		}
	}
	for _, prefix := range l.ECGPrefixes {
		if strings.HasPrefix(name, prefix) {
			return RoleECG
		}
	}

	// Non-numeric leftovers cannot be plotted; everything else is EEG.
	if !table.IsNumeric(name) {
		return RoleIgnored
	}

	return RoleEEG
}

// PlottableChannels returns the channel names that survive classification,
// in table order.
func PlottableChannels(table *Table, roles map[string]Role) []string {
	return Filter(table.Names(), func(name string) bool {
		role := roles[name]
		return role == RoleEEG || role == RoleECG || role == RoleCM
	})
}
