package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigPath is probed when --config is not given. A missing file at
// the default path is not an error; a missing explicit path is.
const defaultConfigPath = "cnxcli.yaml"

// Config mirrors the optional YAML config file. Pointer fields distinguish an
// absent key from its zero value so the flag merge can tell them apart.
type Config struct {
	Slots     int    `yaml:"slots"`
	GroupSize int    `yaml:"group_size"`
	Tries     *int   `yaml:"tries"`
	Workers   int    `yaml:"workers"`
	Memo      *bool  `yaml:"memo"`
	LogLevel  string `yaml:"log_level"`
}

func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
