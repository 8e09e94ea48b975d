package fileblocks

import (
	"regexp"
	"strings"
)

// StreamFormat is the only header convention the streaming parser recognizes.
// Every other catalog format needs to see past the closing fence before it can
// be told apart from its neighbours, which a single forward pass cannot do.
const StreamFormat = "Bold Format"

var streamHeaderRe = regexp.MustCompile("^\\s*\\*\\*([^\\n*`]+?)\\*\\*(?:[^\\n]*)\\s*$")

// Callbacks receives stream events in line order. OnFileNameChange and
// OnCodeLine are the interesting ones; any nil field is treated as a no-op.
type Callbacks struct {
	OnFileNameChange func(name, format string)
	OnCodeLine       func(line string)
	OnNonCodeLine    func(line string)
	OnFileDelete     func(name string)
}

func (c Callbacks) withDefaults() Callbacks {
	if c.OnFileNameChange == nil {
		c.OnFileNameChange = func(string, string) {}
	}
	if c.OnCodeLine == nil {
		c.OnCodeLine = func(string) {}
	}
	if c.OnNonCodeLine == nil {
		c.OnNonCodeLine = func(string) {}
	}
	if c.OnFileDelete == nil {
		c.OnFileDelete = func(string) {}
	}
	return c
}

// streamState is everything the parser carries between chunks.
type streamState struct {
	buffer      strings.Builder // unterminated tail
	insideFence bool
	currentFile string
	hasContent  bool
}

// StreamParser extracts Bold Format files from text that arrives in chunks.
// Chunk boundaries may fall anywhere, including inside a header or a fence
// marker. A StreamParser is not safe for concurrent use.
type StreamParser struct {
	cb Callbacks
	st streamState
}

// NewStreamParser returns a parser that reports to cb.
func NewStreamParser(cb Callbacks) *StreamParser {
	return &StreamParser{cb: cb.withDefaults()}
}

// ProcessChunk buffers chunk and handles every complete line it finishes.
func (p *StreamParser) ProcessChunk(chunk string) {
	if !strings.Contains(chunk, "\n") {
		p.st.buffer.WriteString(chunk)
		return
	}
	pending := p.st.buffer.String() + chunk
	p.st.buffer.Reset()
	for {
		i := strings.IndexByte(pending, '\n')
		if i < 0 {
			break
		}
		p.processLine(pending[:i])
		pending = pending[i+1:]
	}
	p.st.buffer.WriteString(pending)
}

// Write implements io.Writer. It never fails.
func (p *StreamParser) Write(b []byte) (int, error) {
	p.ProcessChunk(string(b))
	return len(b), nil
}

// Flush handles any unterminated trailing line. Call it once when the stream
// ends; without it a final line lacking a newline is lost.
func (p *StreamParser) Flush() {
	if p.st.buffer.Len() == 0 {
		return
	}
	line := p.st.buffer.String()
	p.st.buffer.Reset()
	p.processLine(line)
}

func (p *StreamParser) processLine(line string) {
	if strings.HasPrefix(strings.TrimSpace(line), fence) {
		closing := p.st.insideFence
		p.st.insideFence = !p.st.insideFence
		if closing && p.st.currentFile != "" && !p.st.hasContent {
			p.cb.OnFileDelete(p.st.currentFile)
		}
		return
	}

	if p.st.insideFence {
		if strings.TrimSpace(line) != "" {
			p.st.hasContent = true
		}
		p.cb.OnCodeLine(line)
		return
	}

	if m := streamHeaderRe.FindStringSubmatch(line); m != nil {
		name := stripAnnotation(m[1])
		p.st.currentFile = name
		p.st.hasContent = false
		p.cb.OnFileNameChange(name, StreamFormat)
		return
	}
	p.cb.OnNonCodeLine(line)
}
