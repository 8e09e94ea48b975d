package fileblocks

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// UnknownFormat is the label reported when no format matched.
const UnknownFormat = "Unknown Format"

// ErrUnsupportedFormat is matched by errors.Is for any *UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported format")

// UnsupportedFormatError reports a forced format key that is not in the catalog.
type UnsupportedFormatError struct {
	Key string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Key)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Format is one header convention: a pattern capturing the file name (group 1)
// and the fenced body (group 2) of every block written in that convention.
type Format struct {
	Key   string // stable identifier accepted by Extract
	Label string // human-readable name reported in Result.Format

	pattern       *regexp2.Regexp
	stripComments bool
}

const (
	fence    = "```"
	tick     = "`"
	fenceTag = fence + `(?:\w+)?\n`
	body     = fenceTag + `([\s\S]*?)` + fence
)

func mustPattern(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(expr, regexp2.ECMAScript|regexp2.Multiline)
}

// formats is the catalog in priority order. Several shapes are subsets of
// others (a heading-bold header is also a standard heading), so order matters.
var formats = []Format{
	{
		Key:     "backtick-heading",
		Label:   "Backtick-Heading Format",
		pattern: mustPattern(`^\s*###\s*` + tick + `([^` + tick + `]+)` + tick + `\s*\n` + body),
	},
	{
		Key:     "file-bold",
		Label:   "File Bold Format",
		pattern: mustPattern(`^\s*###\s*File:\s*\*\*(.+?)\*\*\s*\n` + body),
	},
	{
		Key:     "numbered-backtick",
		Label:   "Numbered Backtick Format",
		pattern: mustPattern(`^\s*###\s*\d+\.\s*` + tick + `([^` + tick + `]+)` + tick + `(?:[^\n]*\n)*?\s*` + body),
	},
	{
		Key:     "heading-bold",
		Label:   "Heading Bold Format",
		pattern: mustPattern(`^### \*\*([^\n` + tick + `]+?)\*\*\s*\n` + body),
	},
	{
		Key:     "standard-heading",
		Label:   "Standard Heading Format",
		pattern: mustPattern(`^\s*###\s*(?!` + tick + `|File:|\d+\.)\s*([^\n` + tick + `]+?)\s*\n` + body),
	},
	{
		Key:     "colon",
		Label:   "Colon Format",
		pattern: mustPattern(`^\s*(?!###|\*\*|` + tick + `)([^\n#*` + tick + `]+?):\s*\n` + body),
	},
	{
		Key:           "bold",
		Label:         StreamFormat,
		pattern:       mustPattern(`^\s*(?!###)\*\*([^\n*` + tick + `]+?)\*\*(?:[^\n]*)\s*\n` + body),
		stripComments: true,
	},
	{
		Key:     "hash",
		Label:   "Hash Format",
		pattern: mustPattern(`^\s*# ([^\n` + tick + `]+?)\s*\n` + body),
	},
	{
		Key:     "numbered-bold",
		Label:   "Numbered Bold Format",
		pattern: mustPattern(`^\s*\d+\.\s*\*\*([^\n` + tick + `]+?)\*\*[\s\S]*?\n` + body),
	},
}

// Formats returns the catalog in priority order. The returned slice is a copy.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Lookup returns the format registered under key.
func Lookup(key string) (Format, error) {
	for _, f := range formats {
		if f.Key == key {
			return f, nil
		}
	}
	return Format{}, &UnsupportedFormatError{Key: key}
}

var annotationRe = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

// stripAnnotation drops a trailing "(new file)"-style note from a header name.
func stripAnnotation(name string) string {
	name = strings.TrimSpace(name)
	stripped := annotationRe.ReplaceAllString(name, "")
	if stripped == "" {
		return name
	}
	return stripped
}

// scan collects every non-overlapping match of f in document.
func (f Format) scan(document string) *fileSet {
	set := newFileSet()
	m, err := f.pattern.FindStringMatch(document)
	for m != nil && err == nil {
		name := strings.TrimSpace(m.GroupByNumber(1).String())
		if f.stripComments {
			name = stripAnnotation(name)
		}
		set.put(name, strings.TrimSpace(m.GroupByNumber(2).String()))
		m, err = f.pattern.FindNextMatch(m)
	}
	return set
}
