package fileblocks

import "strings"

// Collector folds stream events back into whole files. Code lines are joined
// with "\n" exactly as received; nothing is trimmed.
//
// A header only becomes a file once a code line arrives for it, so bold prose
// such as "**Note:** ..." that is never followed by a fence yields nothing.
type Collector struct {
	set     *fileSet
	lines   map[string][]string
	current string
	pending bool // current has been announced but has no code lines yet
	deleted []string
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		set:   newFileSet(),
		lines: make(map[string][]string),
	}
}

// Callbacks returns stream callbacks that feed c. Use Chain to observe the
// same events elsewhere.
func (c *Collector) Callbacks() Callbacks {
	return Callbacks{
		OnFileNameChange: c.fileNameChange,
		OnCodeLine:       c.codeLine,
		OnNonCodeLine:    c.nonCodeLine,
		OnFileDelete:     c.fileDelete,
	}
}

func (c *Collector) fileNameChange(name, _ string) {
	c.current = name
	c.pending = true
}

func (c *Collector) codeLine(line string) {
	if c.current == "" {
		return
	}
	if c.pending {
		c.pending = false
		c.lines[c.current] = nil
		c.set.put(c.current, "")
		c.undelete(c.current)
	}
	c.lines[c.current] = append(c.lines[c.current], line)
}

// nonCodeLine drops a pending header once prose separates it from any fence.
func (c *Collector) nonCodeLine(line string) {
	if c.pending && strings.TrimSpace(line) != "" {
		c.current = ""
		c.pending = false
	}
}

func (c *Collector) fileDelete(name string) {
	if name != c.current {
		return
	}
	c.pending = false
	c.set.remove(name)
	delete(c.lines, name)
	c.undelete(name)
	c.deleted = append(c.deleted, name)
	c.current = ""
}

func (c *Collector) undelete(name string) {
	for i, d := range c.deleted {
		if d == name {
			c.deleted = append(c.deleted[:i], c.deleted[i+1:]...)
			return
		}
	}
}

// Files returns the collected files in first-appearance order.
func (c *Collector) Files() []File {
	out := make([]File, 0, c.set.len())
	for _, f := range c.set.files {
		out = append(out, File{Name: f.Name, Text: strings.Join(c.lines[f.Name], "\n")})
	}
	return out
}

// Deleted returns the names whose deletion was signalled and not revived.
func (c *Collector) Deleted() []string {
	out := make([]string, len(c.deleted))
	copy(out, c.deleted)
	return out
}

// Chain returns callbacks that invoke each bundle in order for every event.
func Chain(bundles ...Callbacks) Callbacks {
	bundles = append([]Callbacks(nil), bundles...)
	for i := range bundles {
		bundles[i] = bundles[i].withDefaults()
	}
	return Callbacks{
		OnFileNameChange: func(name, format string) {
			for _, b := range bundles {
				b.OnFileNameChange(name, format)
			}
		},
		OnCodeLine: func(line string) {
			for _, b := range bundles {
				b.OnCodeLine(line)
			}
		},
		OnNonCodeLine: func(line string) {
			for _, b := range bundles {
				b.OnNonCodeLine(line)
			}
		},
		OnFileDelete: func(name string) {
			for _, b := range bundles {
				b.OnFileDelete(name)
			}
		},
	}
}
