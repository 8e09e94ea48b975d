// Package compose renders extracted files back into Bold Format markdown,
// the inverse of fileblocks.Extract with the "bold" key.
package compose

import (
	"path"
	"sort"
	"strings"

	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
)

// LanguageFunc returns the fence tag for a file name, or "" for none.
type LanguageFunc func(name string) string

var defaultLanguages = map[string]string{
	".html": "html",
	".js":   "javascript",
	".css":  "css",
}

// DefaultLanguage knows the three web file types and nothing else.
func DefaultLanguage(name string) string {
	return defaultLanguages[path.Ext(name)]
}

// Languages layers extension overrides (".go" -> "go") over DefaultLanguage.
func Languages(overrides map[string]string) LanguageFunc {
	if len(overrides) == 0 {
		return DefaultLanguage
	}
	return func(name string) string {
		if tag, ok := overrides[path.Ext(name)]; ok {
			return tag
		}
		return DefaultLanguage(name)
	}
}

// Serialize renders files in order as bold headers followed by fenced blocks.
func Serialize(files []fileblocks.File, lang LanguageFunc) string {
	if lang == nil {
		lang = DefaultLanguage
	}
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, strings.Join([]string{
			"**" + f.Name + "**\n",
			"```" + lang(f.Name),
			f.Text,
			"```\n",
		}, "\n"))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n"))
}

// Format renders a name -> text mapping, ordered by name.
func Format(files map[string]string, lang LanguageFunc) string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]fileblocks.File, 0, len(names))
	for _, name := range names {
		list = append(list, fileblocks.File{Name: name, Text: files[name]})
	}
	return Serialize(list, lang)
}
