package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
)

const (
	defaultChunkSize = 64
	defaultTimeout   = 10
)

var validSources = map[string]bool{
	SourceRaw:        true,
	SourceStreamJSON: true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Format != "" {
		if _, err := fileblocks.Lookup(cfg.Format); err != nil {
			return fmt.Errorf("config: 'format': %w (run 'mdfiles formats' to list keys)", err)
		}
	}

	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.ChunkSize < 0 {
		return fmt.Errorf("config: 'chunk-size' must be > 0")
	}

	if cfg.Source == "" {
		cfg.Source = SourceRaw
	}
	if !validSources[cfg.Source] {
		return fmt.Errorf("config: unknown source %q (must be raw or stream-json)", cfg.Source)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("config: 'timeout' must be >= 0")
	}

	exts := make([]string, 0, len(cfg.Languages))
	for ext := range cfg.Languages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("config: languages: %q must be a file extension starting with '.'", ext)
		}
		if strings.TrimSpace(cfg.Languages[ext]) == "" {
			return fmt.Errorf("config: languages: %q has an empty fence tag", ext)
		}
	}

	return nil
}
