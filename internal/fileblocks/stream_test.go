package fileblocks

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"
)

// recorder captures every callback as a tagged string, in order.
type recorder struct {
	events []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnFileNameChange: func(name, format string) {
			r.events = append(r.events, fmt.Sprintf("file %s [%s]", name, format))
		},
		OnCodeLine: func(line string) {
			r.events = append(r.events, "code "+line)
		},
		OnNonCodeLine: func(line string) {
			r.events = append(r.events, "text "+line)
		},
		OnFileDelete: func(name string) {
			r.events = append(r.events, "delete "+name)
		},
	}
}

func (r *recorder) filter(prefix string) []string {
	var out []string
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			out = append(out, strings.TrimPrefix(e, prefix))
		}
	}
	return out
}

func streamChunks(chunks ...string) *recorder {
	r := &recorder{}
	p := NewStreamParser(r.callbacks())
	for _, c := range chunks {
		p.ProcessChunk(c)
	}
	p.Flush()
	return r
}

func TestStream_SingleChunk(t *testing.T) {
	r := streamChunks("**index.html**\n```\n<html>\n</html>\n```\n")
	want := []string{
		"file index.html [Bold Format]",
		"code <html>",
		"code </html>",
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %q, want %q", r.events, want)
	}
}

func TestStream_SplitLines(t *testing.T) {
	r := streamChunks("**inde", "x.html**\n```\n<ht", "ml>\n</html>\n```")
	if got := r.filter("file "); !reflect.DeepEqual(got, []string{"index.html [Bold Format]"}) {
		t.Fatalf("headers = %q", got)
	}
	if got := r.filter("code "); !reflect.DeepEqual(got, []string{"<html>", "</html>"}) {
		t.Fatalf("code = %q", got)
	}
}

func TestStream_MultipleFiles(t *testing.T) {
	r := streamChunks(
		"**index.html**\n```\n<html>\n</html>\n```\n",
		"**styles.css**\n```\nbody { color: blue; }\n```\n",
	)
	wantHeaders := []string{"index.html [Bold Format]", "styles.css [Bold Format]"}
	if got := r.filter("file "); !reflect.DeepEqual(got, wantHeaders) {
		t.Fatalf("headers = %q", got)
	}
	wantCode := []string{"<html>", "</html>", "body { color: blue; }"}
	if got := r.filter("code "); !reflect.DeepEqual(got, wantCode) {
		t.Fatalf("code = %q", got)
	}
}

func TestStream_FenceWithLanguage(t *testing.T) {
	r := streamChunks("**script.js**\n```js\nconsole.log('Hello');\n```\n")
	if got := r.filter("code "); !reflect.DeepEqual(got, []string{"console.log('Hello');"}) {
		t.Fatalf("code = %q", got)
	}
}

func TestStream_FlushPartialHeader(t *testing.T) {
	r := streamChunks("**partial.html**")
	if got := r.filter("file "); !reflect.DeepEqual(got, []string{"partial.html [Bold Format]"}) {
		t.Fatalf("headers = %q", got)
	}
}

func TestStream_WithoutFlushDropsTail(t *testing.T) {
	r := &recorder{}
	p := NewStreamParser(r.callbacks())
	p.ProcessChunk("**partial.html**")
	if len(r.events) != 0 {
		t.Fatalf("events before flush = %q", r.events)
	}
}

func TestStream_NonCodeLines(t *testing.T) {
	r := streamChunks(
		"**index.html**\n",
		"```\n<ht",
		"ml>\n</ht",
		"ml>\n```\n",
		"Some irrelevant line\n",
		"**styles.css**\n",
		"```\nbody { color:",
		" blue; }\n```\n",
	)
	want := []string{
		"file index.html [Bold Format]",
		"code <html>",
		"code </html>",
		"text Some irrelevant line",
		"file styles.css [Bold Format]",
		"code body { color: blue; }",
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %q, want %q", r.events, want)
	}
}

func TestStream_IrrelevantLineOnly(t *testing.T) {
	r := streamChunks("This is an irrelevant line\n")
	if got := r.filter("file "); len(got) != 0 {
		t.Fatalf("headers = %q", got)
	}
	if got := r.filter("code "); len(got) != 0 {
		t.Fatalf("code = %q", got)
	}
	if got := r.filter("text "); !reflect.DeepEqual(got, []string{"This is an irrelevant line"}) {
		t.Fatalf("text = %q", got)
	}
}

func TestStream_HeaderWithCommentary(t *testing.T) {
	r := streamChunks("**index.html** (some commentary)\n```\n<html>\n</html>\n```\n")
	if got := r.filter("file "); !reflect.DeepEqual(got, []string{"index.html [Bold Format]"}) {
		t.Fatalf("headers = %q", got)
	}
}

func TestStream_HeaderAnnotationStripped(t *testing.T) {
	r := streamChunks("**src/app.js (new file)**\n```\nx\n```\n")
	if got := r.filter("file "); !reflect.DeepEqual(got, []string{"src/app.js [Bold Format]"}) {
		t.Fatalf("headers = %q", got)
	}
}

func TestStream_HeaderInsideFenceIsCode(t *testing.T) {
	r := streamChunks("**a.md**\n```\n**not-a-header.js**\n```\n")
	want := []string{"file a.md [Bold Format]", "code **not-a-header.js**"}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %q, want %q", r.events, want)
	}
}

func TestStream_BlankLinesInsideFence(t *testing.T) {
	r := streamChunks("**a.py**\n```\n\nx = 1\n\n```\n")
	if got := r.filter("code "); !reflect.DeepEqual(got, []string{"", "x = 1", ""}) {
		t.Fatalf("code = %q", got)
	}
}

func TestStream_DeleteOnEmptyBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "**x.js**\n```\n```\n"},
		{"whitespace", "**x.js**\n```js\n   \n\t\n```\n"},
		{"blank line before fence", "**x.js**\n\n```\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := streamChunks(tt.input)
			if got := r.filter("delete "); !reflect.DeepEqual(got, []string{"x.js"}) {
				t.Fatalf("deletes = %q", got)
			}
			for _, line := range r.filter("code ") {
				if strings.TrimSpace(line) != "" {
					t.Fatalf("unexpected non-whitespace code line %q", line)
				}
			}
		})
	}
}

func TestStream_NoDeleteWithContent(t *testing.T) {
	r := streamChunks("**x.js**\n```\n\nvar x;\n\n```\n")
	if got := r.filter("delete "); len(got) != 0 {
		t.Fatalf("deletes = %q", got)
	}
}

func TestStream_NoDeleteWithoutHeader(t *testing.T) {
	r := streamChunks("```\n```\n")
	if got := r.filter("delete "); len(got) != 0 {
		t.Fatalf("deletes = %q", got)
	}
}

func TestStream_DeleteTracksCurrentHeader(t *testing.T) {
	r := streamChunks(
		"**keep.js**\n```\nok\n```\n",
		"**gone.js**\n```\n```\n",
	)
	want := []string{
		"file keep.js [Bold Format]",
		"code ok",
		"file gone.js [Bold Format]",
		"delete gone.js",
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %q, want %q", r.events, want)
	}
}

func TestStream_NilOptionalCallbacks(t *testing.T) {
	var names, code []string
	p := NewStreamParser(Callbacks{
		OnFileNameChange: func(name, _ string) { names = append(names, name) },
		OnCodeLine:       func(line string) { code = append(code, line) },
	})
	p.ProcessChunk("prose\n**x.js**\n```\n```\n**y.js**\n```\ny\n```\n")
	p.Flush()
	if !reflect.DeepEqual(names, []string{"x.js", "y.js"}) {
		t.Fatalf("names = %q", names)
	}
	if !reflect.DeepEqual(code, []string{"y"}) {
		t.Fatalf("code = %q", code)
	}
}

func TestStream_ChunkBoundaryInvariance(t *testing.T) {
	input := readTestdata(t, "formats/bold-prose.md") + "\n**gone.css**\n```\n```\ntrailing words"
	want := streamChunks(input).events

	for size := 1; size <= 17; size++ {
		var chunks []string
		for i := 0; i < len(input); i += size {
			end := i + size
			if end > len(input) {
				end = len(input)
			}
			chunks = append(chunks, input[i:end])
		}
		if got := streamChunks(chunks...).events; !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk size %d: events = %q, want %q", size, got, want)
		}
	}
}

func TestStream_Writer(t *testing.T) {
	r := &recorder{}
	p := NewStreamParser(r.callbacks())
	n, err := io.Copy(p, strings.NewReader("**a.txt**\n```\nhello\n```\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 24 {
		t.Fatalf("copied %d bytes", n)
	}
	p.Flush()
	want := []string{"file a.txt [Bold Format]", "code hello"}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %q, want %q", r.events, want)
	}
}

func TestStream_SingleFileExampleTwoChunks(t *testing.T) {
	r := streamChunks("**a.txt**\n``", "`\nhello\n```\n")
	want := []string{"file a.txt [Bold Format]", "code hello"}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %q, want %q", r.events, want)
	}
}
