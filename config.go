package climate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileOptions is the yaml shape of a config file. Only keys that make
// sense outside code are exposed; the HTTP client stays programmatic.
type fileOptions struct {
	BaseURL             string   `yaml:"base_url"`
	Mode                string   `yaml:"mode"`
	Fixture             string   `yaml:"fixture"`
	FixtureDir          string   `yaml:"fixture_dir"`
	DropResponseHeaders []string `yaml:"drop_response_headers"`
}

// LoadOptions reads client options from a yaml file, e.g.
//
//	base_url: http://climatedataapi.worldbank.org
//	mode: playback
//	fixture: average_Rainfall_For_Great_Britain_From_1980_to_1999_Exists
//	fixture_dir: playback_data
//
// Unset keys keep their usual defaults when the options are used with New.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return nil, fmt.Errorf("climate: reading config %s: %w", path, err)
	}

	o := &Options{
		BaseURL:             fo.BaseURL,
		Fixture:             fo.Fixture,
		FixtureDir:          fo.FixtureDir,
		DropResponseHeaders: fo.DropResponseHeaders,
	}
	if fo.Mode != "" {
		mode, err := ParseMode(fo.Mode)
		if err != nil {
			return nil, fmt.Errorf("in config %s: %w", path, err)
		}
		o.Mode = mode
	}
	return o, nil
}
