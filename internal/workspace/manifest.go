package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	metaDir      = ".mdfiles"
	manifestName = "manifest.json"
)

// Manifest records one extraction run into an output directory.
type Manifest struct {
	RunID    string    `json:"run_id"`
	Source   string    `json:"source"` // input file, "stdin" or the generator command
	Mode     string    `json:"mode"`   // batch or stream
	Format   string    `json:"format"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Duration string    `json:"duration,omitempty"`
	Written  []string  `json:"written"`
	Deleted  []string  `json:"deleted,omitempty"`
}

// NewManifest starts a manifest with a fresh run ID.
func NewManifest(mode, source string) *Manifest {
	return &Manifest{
		RunID:  uuid.NewString(),
		Source: source,
		Mode:   mode,
		Start:  time.Now(),
	}
}

// Finish stamps the end time and the outcome of Apply.
func (m *Manifest) Finish(format string, written, deleted []string) {
	m.Format = format
	m.Written = written
	m.Deleted = deleted
	m.End = time.Now()
	m.Duration = formatDuration(m.End.Sub(m.Start))
}

func manifestPath(dir string) string {
	return filepath.Join(dir, metaDir, manifestName)
}

// Save writes the manifest under dir/.mdfiles/.
func (m *Manifest) Save(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, metaDir), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", metaDir, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(manifestPath(dir), data, 0644)
}

// LoadManifest reads the last manifest saved in dir. It returns nil, nil if
// there is none.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(manifestPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}
