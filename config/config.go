// Package config loads the YAML process configuration the cmd/gridbase
// CLI's "serve" subcommand reads, using gopkg.in/yaml.v2 in the style
// of the wider retrieval pack's Kubernetes-style YAML-first config
// loading.
package config

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config is the process configuration gridbase reads at startup.
// DataDir and Addr are the only fields the core cares about; TagsFile
// and SnapshotUnused exist because a real deployment of this system
// would carry them even though the core's Non-goals mean nothing in
// this module reads SnapshotUnused today.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	Addr           string `yaml:"addr"`
	TagsFile       string `yaml:"tags_file"`
	SnapshotUnused bool   `yaml:"snapshot_unused"`
}

// Default returns a Config with sane defaults for local development.
func Default() Config {
	return Config{
		DataDir:  "./data",
		Addr:     ":8080",
		TagsFile: "./data/commands.tag",
	}
}

// Load reads and parses path into a Config, filling unset fields from
// Default. A missing file is not an error — callers get defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
