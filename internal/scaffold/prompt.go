package scaffold

import (
	"github.com/jorge-barreto/mdfiles/internal/compose"
	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
)

// exampleFiles illustrate the expected answer shape inside the prompt.
var exampleFiles = []fileblocks.File{
	{Name: "index.html", Text: "<!DOCTYPE html>\n<html>\n  <head><link rel=\"stylesheet\" href=\"styles.css\"></head>\n  <body><h1>Hello</h1></body>\n</html>"},
	{Name: "styles.css", Text: "h1 {\n  color: teal;\n}"},
}

// buildExamplePrompt returns a starter prompt that asks the model to answer
// in the bold header format the streaming extractor understands.
func buildExamplePrompt() string {
	return promptPrefix + compose.Serialize(exampleFiles, compose.DefaultLanguage) + promptSuffix
}

const promptPrefix = `Build a small static landing page for a coffee shop.

## Output Format

Answer with one block per file. Put the file name in bold on its own line,
then the complete file content in a fenced code block. Do not abbreviate
files or use placeholders. For example:

`

const promptSuffix = `

To delete a file, repeat its bold header followed by an empty code block.
Keep any explanation short and outside the code blocks.
`
