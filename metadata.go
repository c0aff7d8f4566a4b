package signalplot

// PlotOptions is the subset of the run configuration a viewer client may
// care about.
type PlotOptions struct {
	Title      string
	XLabel     string
	Downsample int
	Normalize  bool
}

// Metadata describes the figure currently served by the local viewer. It is
// exposed as JSON on /metadata.
type Metadata struct {
	Source      string
	Rows        int
	Channels    map[string]string // channel name -> role
	PlotOptions PlotOptions
}

// NewMetadata summarizes a pipeline result for the viewer.
func NewMetadata(source string, table *Table, roles map[string]Role, opt Options, fo FigureOptions) Metadata {
	channels := make(map[string]string, len(roles))
	for name, role := range roles {
		channels[name] = role.String()
	}

	return Metadata{
		Source:   source,
		Rows:     table.Rows(),
		Channels: channels,
		PlotOptions: PlotOptions{
			Title:      fo.Title,
			XLabel:     fo.XLabel,
			Downsample: opt.Downsample,
			Normalize:  opt.Normalize,
		},
	}
}
