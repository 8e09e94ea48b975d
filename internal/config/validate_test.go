package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ChunkSize != 64 {
		t.Fatalf("ChunkSize = %d, want 64", cfg.ChunkSize)
	}
	if cfg.Source != SourceRaw {
		t.Fatalf("Source = %q, want %q", cfg.Source, SourceRaw)
	}
	if cfg.Timeout != 10 {
		t.Fatalf("Timeout = %d, want 10", cfg.Timeout)
	}
	if cfg.Format != "" {
		t.Fatalf("Format = %q, want empty", cfg.Format)
	}
}

func TestValidate_KnownFormat(t *testing.T) {
	cfg := &Config{Format: "numbered-bold"}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_UnknownFormat(t *testing.T) {
	cfg := &Config{Format: "fancy"}
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), `unsupported format: fancy`) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
	if !errors.Is(err, fileblocks.ErrUnsupportedFormat) {
		t.Fatalf("expected wrapped ErrUnsupportedFormat, got %v", err)
	}
}

func TestValidate_NegativeChunkSize(t *testing.T) {
	cfg := &Config{ChunkSize: -1}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "chunk-size") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_UnknownSource(t *testing.T) {
	cfg := &Config{Source: "websocket"}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "unknown source") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_StreamJSONSource(t *testing.T) {
	cfg := &Config{Source: SourceStreamJSON}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{Timeout: -5}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_Languages(t *testing.T) {
	tests := []struct {
		name    string
		langs   map[string]string
		wantErr string
	}{
		{"valid", map[string]string{".go": "go", ".ts": "typescript"}, ""},
		{"missing dot", map[string]string{"go": "go"}, "must be a file extension"},
		{"bare dot", map[string]string{".": "x"}, "must be a file extension"},
		{"empty tag", map[string]string{".go": " "}, "empty fence tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Config{Languages: tt.langs})
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `format: bold
out-dir: generated
chunk-size: 16
source: stream-json
command: claude -p "$PROMPT" --output-format stream-json
timeout: 3
languages:
  .go: go
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "bold" || cfg.OutDir != "generated" || cfg.ChunkSize != 16 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Source != SourceStreamJSON || cfg.Timeout != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Languages[".go"] != "go" {
		t.Fatalf("Languages = %v", cfg.Languages)
	}
	if cfg.Dir != dir {
		t.Fatalf("Dir = %q, want %q", cfg.Dir, dir)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("format: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected YAML error")
	}
}

func TestDiscover_WalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("out-dir: out\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutDir != "out" {
		t.Fatalf("OutDir = %q, want out", cfg.OutDir)
	}
	if cfg.Dir != root {
		t.Fatalf("Dir = %q, want %q", cfg.Dir, root)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ChunkSize != 64 || cfg.Source != SourceRaw || cfg.Dir != "" {
		t.Fatalf("unexpected default: %+v", cfg)
	}
	if cfg.Timeout != 10 {
		t.Fatalf("Timeout = %d, want 10", cfg.Timeout)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
	validated := &Config{}
	if err := Validate(validated); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, validated) {
		t.Fatalf("Default() = %+v, Validate(&Config{}) = %+v", cfg, validated)
	}
}
