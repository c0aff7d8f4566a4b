package signalplot

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// LoadLayout reads a YAML layout file and merges it over the defaults, so a
// file only has to name the conventions it changes.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	layout := DefaultLayout()
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, &ConfigError{Msg: "invalid layout file: " + err.Error()}
	}

	return layout, nil
}

// ViewerConfig carries the local viewer settings that rarely change per
// invocation, so they live in the environment instead of flags. Flags still
// win when given.
type ViewerConfig struct {
	Listen      string `envconfig:"LISTEN" default:"localhost:8822"`
	OpenBrowser bool   `envconfig:"OPEN_BROWSER" default:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// ViewerConfigFromEnv reads SIGNALPLOT_* environment variables.
func ViewerConfigFromEnv() (ViewerConfig, error) {
	var cfg ViewerConfig
	if err := envconfig.Process("signalplot", &cfg); err != nil {
		return ViewerConfig{}, &ConfigError{Msg: err.Error()}
	}
	return cfg, nil
}
