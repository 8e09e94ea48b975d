package fileblocks

// File represents a single extracted file from LLM output.
type File struct {
	Name string `json:"name" yaml:"name"` // e.g. "src/index.js"
	Text string `json:"text" yaml:"text"` // block body, trimmed
}

// Result is the outcome of a batch extraction.
type Result struct {
	Files  []File `json:"files" yaml:"files"`
	Format string `json:"format" yaml:"format"`
}

// fileSet keeps files in first-appearance order with last-write-wins text.
type fileSet struct {
	files []File
	index map[string]int
}

func newFileSet() *fileSet {
	return &fileSet{index: make(map[string]int)}
}

func (s *fileSet) put(name, text string) {
	if i, ok := s.index[name]; ok {
		s.files[i].Text = text
		return
	}
	s.index[name] = len(s.files)
	s.files = append(s.files, File{Name: name, Text: text})
}

func (s *fileSet) remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.files); j++ {
		s.index[s.files[j].Name] = j
	}
	return true
}

func (s *fileSet) len() int { return len(s.files) }

// Extract finds the named files embedded in a markdown document.
//
// With an empty key every format in the catalog is tried in priority order
// and the first one yielding at least one file wins; formats are never mixed
// within one document. A non-empty key restricts extraction to that format
// and fails only if the key is not in the catalog. When nothing matches the
// result has no files and Format is UnknownFormat.
func Extract(document, key string) (Result, error) {
	candidates := formats
	if key != "" {
		f, err := Lookup(key)
		if err != nil {
			return Result{}, err
		}
		candidates = []Format{f}
	}

	for _, f := range candidates {
		set := f.scan(document)
		if set.len() > 0 {
			return Result{Files: set.files, Format: f.Label}, nil
		}
	}
	return Result{Files: []File{}, Format: UnknownFormat}, nil
}
