package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = ".mdfiles.yaml"

const (
	SourceRaw        = "raw"
	SourceStreamJSON = "stream-json"
)

type Config struct {
	Format    string            `yaml:"format"`
	OutDir    string            `yaml:"out-dir"`
	ChunkSize int               `yaml:"chunk-size"`
	Source    string            `yaml:"source"`
	Command   string            `yaml:"command"`
	Timeout   int               `yaml:"timeout"`
	Languages map[string]string `yaml:"languages"`

	// Dir is the directory the config was loaded from, or "" for defaults.
	Dir string `yaml:"-"`
}

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		ChunkSize: defaultChunkSize,
		Source:    SourceRaw,
		Timeout:   defaultTimeout,
	}
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return &cfg, nil
}

// Find walks up from dir looking for FileName. It returns the path found or
// "" when the filesystem root is reached without a match.
func Find(dir string) (string, error) {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover loads the nearest config above dir, or defaults if there is none.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
