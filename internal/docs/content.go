package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with mdfiles",
		Content: topicQuickstart,
	},
	{
		Name:    "formats",
		Title:   "Header Formats",
		Summary: "The file-header conventions recognized in model output",
		Content: topicFormats,
	},
	{
		Name:    "streaming",
		Title:   "Streaming Extraction",
		Summary: "Line-by-line extraction, chunking, and deletions",
		Content: topicStreaming,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "generator",
		Title:   "Generator Commands",
		Summary: "Running a model CLI and extracting its output live",
		Content: topicGenerator,
	},
	{
		Name:    "output",
		Title:   "Output Directory",
		Summary: "How files are written and what .mdfiles/ records",
		Content: topicOutput,
	},
}

const topicQuickstart = "Quick Start\n" +
	"===========\n" +
	`
1. Save a model response to a file, or pipe it in:

    mdfiles extract answer.md

   The detected header format and every file found are printed.

2. Write the files into a directory:

    mdfiles extract answer.md --out ./site

3. Watch a response arrive and materialize as it streams:

    some-model-cli | mdfiles stream --out ./site

4. Let mdfiles run the model for you:

    mdfiles init
    mdfiles run --prompt "Build a landing page" --out ./site

CLI Commands
------------

  mdfiles extract [file]        Batch-extract files from markdown
  mdfiles stream [file]         Stream markdown through the live extractor
  mdfiles run                   Run the generator command and stream its output
  mdfiles serialize <path>...   Render files as Bold Format markdown
  mdfiles status [dir]          Show the last run recorded in an output directory
  mdfiles formats               List recognized header formats
  mdfiles init                  Write an example .mdfiles.yaml
  mdfiles docs [topic]          Show documentation

Reading from stdin: omit the file argument, or pass "-".
`

const topicFormats = "Header Formats\n" +
	"==============\n" +
	`
A file block is a header naming the file followed by a fenced code block.
mdfiles knows nine header conventions and tries them in priority order; the
first one that yields at least one file wins, and formats are never mixed
within one document.

  backtick-heading    ### ` + "`index.html`" + `
  file-bold           **File: index.html**
  numbered-backtick   1. ` + "`index.html`" + `
  heading-bold        ### **index.html**
  standard-heading    ### index.html
  colon               index.html:
  bold                **index.html**  (optional trailing commentary)
  hash                # index.html
  numbered-bold       1. **index.html**

Force one with --format KEY. A forced format that does not match yields no
files; an unknown key is an error. Run 'mdfiles formats' for the labels.

Names are trimmed. A trailing parenthesized annotation on a bold header,
as in **app.js (new file)**, is dropped. Content is trimmed of leading and
trailing whitespace; interior formatting is kept verbatim. When the same
name appears twice the last block wins, but the file keeps its first
position in the output.
`

const topicStreaming = "Streaming Extraction\n" +
	"====================\n" +
	`
'mdfiles stream' and 'mdfiles run' use the incremental extractor, which
only recognizes the bold header convention and works line by line:

  - Text arrives in chunks of any size; a line is processed once its
    newline arrives, and the unterminated tail is processed at the end.
  - Outside a fence, a **name** line starts a new file. Anything else is
    commentary and is shown dimmed.
  - Inside a fence, every line is file content, including lines that
    look like headers.
  - A fence that closes with no non-whitespace content between it and its
    opening marks the current file for deletion.

Chunk boundaries never change the result; --chunk-size only changes how
often the display refreshes. With --stream-json the input is a stream-json
event log and only text deltas are fed to the extractor.
`

const topicConfig = "Configuration Reference\n" +
	"=======================\n" +
	`
mdfiles looks for .mdfiles.yaml in the current directory and its parents.
Every field is optional; flags override config values.

  format: ""          Format key forced on extract (empty = detect)
  out-dir: ""         Default --out directory (relative to the config file)
  chunk-size: 64      Read size in bytes for stream (0 = default)
  source: raw         Input decoding for stream/run: raw or stream-json
  command: ""         Generator command for 'mdfiles run' (bash -c)
  timeout: 10         Generator timeout in minutes (0 = default)
  languages:          Extension to fence tag overrides for serialize
    .go: go

Validation errors are reported with a "config:" prefix and stop the
command before any input is read.
`

const topicGenerator = "Generator Commands\n" +
	"==================\n" +
	`
'mdfiles run' starts the configured command with bash -c, reads its
stdout through the streaming extractor, and writes the files when it
exits. Stderr passes through to the terminal.

The prompt is given with --prompt TEXT or --prompt-file PATH. Before the
command runs these variables are expanded in it:

  $PROMPT        The prompt text
  $PROMPT_FILE   A file holding the prompt text

The same values are exported as MDFILES_PROMPT and MDFILES_PROMPT_FILE.
A .env file next to .mdfiles.yaml is added to the command's environment
only; mdfiles itself never reads it.

The command runs in its own process group. Ctrl-C or the timeout stops
the whole group. A non-zero exit is reported but files extracted so far
are still written.
`

const topicOutput = "Output Directory\n" +
	"================\n" +
	`
With --out DIR each extracted file is written to DIR/<name>:

  - Names that are absolute or climb out of DIR with ".." are rejected
    before anything is written.
  - Each file is written to a temporary file and renamed into place.
  - Files marked for deletion by the streaming extractor are removed.
  - DIR/.mdfiles/manifest.json records the run: a unique run ID, the
    source, the format, timing, and the written and deleted names.

'mdfiles status DIR' prints the last manifest.
`
