// Package config loads optional run defaults from a dedalus.yaml file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig holds defaults for the run subcommand. Zero fields mean "not
// set"; explicit flags always win.
type RunConfig struct {
	Timesteps int `yaml:"timesteps"`
	Low       int `yaml:"low"`
	High      int `yaml:"high"`
}

// DefaultFile is the config filename searched for next to the program file.
const DefaultFile = "dedalus.yaml"

// Load reads a RunConfig from the named file. A missing file is not an
// error; it yields the zero config.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return RunConfig{}, nil
	}
	if err != nil {
		return RunConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
