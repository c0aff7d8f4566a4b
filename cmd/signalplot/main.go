package main

import (
	"context"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/dhairya2001/signalplot"
)

type cliOptions struct {
	Csv        string  `long:"csv" description:"Path to the CSV recording (lines beginning with '#' are ignored)" required:"true"`
	Downsample int     `long:"downsample" default:"1" description:"Integer stride to downsample rows for speed (1 = no downsample)"`
	Normalize  bool    `long:"normalize" description:"Per-trace min-max normalization to [-1, 1]"`
	NoECG      bool    `long:"no-ecg" description:"Do not plot ECG channels (X1/X2)"`
	NoCM       bool    `long:"no-cm" description:"Do not plot the CM reference channel"`
	HTMLOut    string  `long:"html-out" description:"Path to save a standalone interactive HTML file"`
	EDFOut     string  `long:"edf-out" description:"Path to export the transformed traces as an EDF file"`
	Tee        string  `long:"tee" description:"Path to dump the loaded table back out as CSV"`
	Layout     string  `long:"layout" description:"YAML file overriding the channel naming conventions"`
	Serve      bool    `long:"serve" description:"Serve the figure on a local HTTP viewer"`
	Watch      bool    `long:"watch" description:"Re-plot when the input file changes (implies --serve)"`
	Listen     string  `long:"listen" description:"Viewer listen address (default from SIGNALPLOT_LISTEN)"`
	NoBrowser  bool    `long:"no-browser" description:"Do not open the browser automatically in serve mode"`
	Title      string  `long:"title" default:"EEG + ECG Scrollable Plot" description:"Figure title"`
	SampleRate float64 `long:"sample-rate" description:"Sample rate in Hz, used when the recording has no Time column"`
	Verbose    bool    `long:"verbose" short:"v" description:"Enable debug logging"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		return 1
	}

	viewerCfg, err := signalplot.ViewerConfigFromEnv()
	if err != nil {
		logrus.WithError(err).Error("invalid environment configuration")
		return 1
	}

	setupLogging(opts.Verbose, viewerCfg.LogLevel)

	if opts.Downsample < 1 {
		logrus.Error("--downsample must be a positive integer stride")
		return 1
	}

	layout := signalplot.DefaultLayout()
	if opts.Layout != "" {
		layout, err = signalplot.LoadLayout(opts.Layout)
		if err != nil {
			logrus.WithError(err).Error("failed to load layout file")
			return 1
		}
	}

	pipeline := &signalplot.Pipeline{
		Path:   opts.Csv,
		Layout: layout,
		Options: signalplot.Options{
			Downsample: opts.Downsample,
			Normalize:  opts.Normalize,
			IncludeECG: !opts.NoECG,
			IncludeCM:  !opts.NoCM,
			SampleRate: opts.SampleRate,
		},
		Figure: signalplot.FigureOptions{
			Title:      opts.Title,
			XLabel:     "Time (s)",
			Normalized: opts.Normalize,
		},
	}

	result, err := pipeline.Run()
	if err != nil {
		if err == signalplot.ErrNoPlottableChannels {
			return 2
		}
		logrus.WithError(err).Error("failed to build figure")
		return 1
	}

	if opts.Tee != "" {
		if err := signalplot.WriteTee(result.Table, opts.Tee); err != nil {
			logrus.WithError(err).Error("failed to write tee output")
			return 1
		}
	}

	if opts.HTMLOut != "" {
		if err := signalplot.WriteHTML(result.Figure, opts.HTMLOut); err != nil {
			logrus.WithError(err).Error("failed to write HTML output")
			return 1
		}
	}

	if opts.EDFOut != "" {
		if err := signalplot.WriteEDF(result.Traces, opts.EDFOut, opts.SampleRate, "signalplot export"); err != nil {
			logrus.WithError(err).Error("failed to write EDF output")
			return 1
		}
	}

	// With no HTML artifact requested the figure is shown interactively,
	// matching the behavior of passing --serve.
	serve := opts.Serve || opts.Watch || (opts.HTMLOut == "" && opts.EDFOut == "" && opts.Tee == "")
	if !serve {
		return 0
	}

	addr := viewerCfg.Listen
	if opts.Listen != "" {
		addr = opts.Listen
	}

	broadcaster := signalplot.NewReloadBroadcaster()
	server := signalplot.NewHttpServer(addr, broadcaster)
	if err := server.SetFigure(result.Figure, result.Metadata); err != nil {
		logrus.WithError(err).Error("failed to render figure")
		return 1
	}

	if opts.Watch {
		watcher, err := signalplot.NewFileWatcher(opts.Csv, func() {
			rebuilt, err := pipeline.Run()
			if err != nil {
				logrus.WithError(err).Warn("re-plot failed, keeping previous figure")
				broadcaster.Broadcast("rebuild failed", err)
				return
			}
			if err := server.SetFigure(rebuilt.Figure, rebuilt.Metadata); err != nil {
				logrus.WithError(err).Warn("failed to render rebuilt figure")
				return
			}
			broadcaster.Broadcast("input file changed", nil)
		})
		if err != nil {
			logrus.WithError(err).Error("failed to watch input file")
			return 1
		}
		defer watcher.Close()
		watcher.Start(context.Background())
	}

	if viewerCfg.OpenBrowser && !opts.NoBrowser {
		signalplot.OpenBrowser(server.URL())
	}

	if err := server.Run(); err != nil {
		logrus.WithError(err).Error("viewer failed")
		return 1
	}
	return 0
}

func setupLogging(verbose bool, level string) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetLevel(parsed)
}
