// Package workspace materializes extracted files into a directory.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
)

// Resolve maps a file name from model output to a path inside dir. Names
// that are absolute or climb out of dir are rejected.
func Resolve(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("file %q: absolute paths are not allowed", name)
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file %q: path escapes the output directory", name)
	}
	if clean == metaDir || strings.HasPrefix(clean, metaDir+string(filepath.Separator)) {
		return "", fmt.Errorf("file %q: %s/ is reserved", name, metaDir)
	}
	return filepath.Join(dir, clean), nil
}

// Apply writes files into dir and removes the deleted names. Every name is
// checked before anything touches the disk.
func Apply(dir string, files []fileblocks.File, deleted []string) (written, removed []string, err error) {
	paths := make([]string, len(files))
	for i, f := range files {
		if paths[i], err = Resolve(dir, f.Name); err != nil {
			return nil, nil, err
		}
	}
	delPaths := make([]string, len(deleted))
	for i, name := range deleted {
		if delPaths[i], err = Resolve(dir, name); err != nil {
			return nil, nil, err
		}
	}

	for i, f := range files {
		if err := os.MkdirAll(filepath.Dir(paths[i]), 0755); err != nil {
			return written, removed, fmt.Errorf("creating directory for %s: %w", f.Name, err)
		}
		if err := writeFileAtomic(paths[i], []byte(withNewline(f.Text)), 0644); err != nil {
			return written, removed, fmt.Errorf("writing %s: %w", f.Name, err)
		}
		written = append(written, f.Name)
	}
	for i, name := range deleted {
		if err := os.Remove(delPaths[i]); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return written, removed, fmt.Errorf("removing %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return written, removed, nil
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
