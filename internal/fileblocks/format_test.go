package fileblocks

import (
	"errors"
	"testing"
)

func TestFormats_PriorityOrder(t *testing.T) {
	want := []string{
		"backtick-heading",
		"file-bold",
		"numbered-backtick",
		"heading-bold",
		"standard-heading",
		"colon",
		"bold",
		"hash",
		"numbered-bold",
	}
	got := Formats()
	if len(got) != len(want) {
		t.Fatalf("got %d formats, want %d", len(got), len(want))
	}
	for i, key := range want {
		if got[i].Key != key {
			t.Errorf("format %d = %q, want %q", i, got[i].Key, key)
		}
		if got[i].Label == "" {
			t.Errorf("format %q has empty Label", got[i].Key)
		}
	}
}

func TestFormats_ReturnsCopy(t *testing.T) {
	got := Formats()
	got[0].Key = "mutated"
	if Formats()[0].Key != "backtick-heading" {
		t.Fatal("Formats() exposed the catalog")
	}
}

func TestFormats_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Formats() {
		if seen[f.Key] {
			t.Errorf("duplicate key %q", f.Key)
		}
		seen[f.Key] = true
	}
}

func TestLookup(t *testing.T) {
	f, err := Lookup("bold")
	if err != nil {
		t.Fatal(err)
	}
	if f.Label != StreamFormat {
		t.Fatalf("Label = %q, want %q", f.Label, StreamFormat)
	}

	_, err = Lookup("nope")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestStripAnnotation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"index.html", "index.html"},
		{"index.html (new file)", "index.html"},
		{"src/app.js (Modified)", "src/app.js"},
		{"  spaced.css  ", "spaced.css"},
		{"(only)", "(only)"},
		{"fn(x).js", "fn(x).js"},
	}
	for _, tt := range tests {
		if got := stripAnnotation(tt.in); got != tt.want {
			t.Errorf("stripAnnotation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
