package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ownable/storage"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNetworkID      = "T"
	DefaultArchiveDir     = "./ownable-data/snapshots"
	DefaultArchiveBackend = storage.BackendLevelDB
	DefaultLogLevel       = "info"
)

// LogConfig controls structured logging of the host tool.
type LogConfig struct {
	Env   string `toml:"Env" yaml:"env"`
	File  string `toml:"File" yaml:"file"`
	Level string `toml:"Level" yaml:"level"`
}

type Config struct {
	NetworkID      string `toml:"NetworkID" yaml:"networkId"`
	ChainID        string `toml:"ChainID" yaml:"chainId"`
	ArchiveDir     string `toml:"ArchiveDir" yaml:"archiveDir"`
	ArchiveBackend string `toml:"ArchiveBackend" yaml:"archiveBackend"`

	// MetricsFile, when set, receives a Prometheus text exposition of the
	// process metrics after every command (node_exporter textfile format).
	MetricsFile string    `toml:"MetricsFile" yaml:"metricsFile"`
	Log         LogConfig `toml:"log" yaml:"log"`
}

// Load loads the configuration from the given path. Files ending in .yaml or
// .yml are read as YAML, everything else as TOML. A missing file is created
// with default values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := &Config{}
	if isYAML(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config file %s has unknown field %s", path, undecoded[0])
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.NetworkID) == "" {
		c.NetworkID = DefaultNetworkID
	}
	if strings.TrimSpace(c.ArchiveDir) == "" {
		c.ArchiveDir = DefaultArchiveDir
	}
	if strings.TrimSpace(c.ArchiveBackend) == "" {
		c.ArchiveBackend = DefaultArchiveBackend
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := Default()
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		return enc.Encode(cfg)
	}
	return toml.NewEncoder(f).Encode(cfg)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
