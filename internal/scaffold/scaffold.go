package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/mdfiles/internal/config"
	"github.com/jorge-barreto/mdfiles/internal/ux"
)

// PromptFile is the example prompt written next to the config.
const PromptFile = "prompt.md"

var configTemplate = `# mdfiles configuration. Every field is optional.

# Force a header format on extract (run 'mdfiles formats' for keys).
format: ""

# Default output directory for --out, relative to this file.
out-dir: out

# Bytes per chunk fed to the streaming extractor.
chunk-size: 64

# How 'mdfiles run' decodes the generator's stdout: raw or stream-json.
source: stream-json

# Generator for 'mdfiles run'. $PROMPT and $PROMPT_FILE are expanded.
command: claude -p --output-format stream-json --verbose --include-partial-messages "$(cat $PROMPT_FILE)"

# Generator timeout in minutes.
timeout: 10

# Fence tags used by 'mdfiles serialize' beyond .html, .js and .css.
languages:
  .go: go
  .py: python
  .md: markdown
`

// Init writes an example .mdfiles.yaml and prompt into targetDir.
func Init(targetDir string) error {
	configPath := filepath.Join(targetDir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, targetDir)
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", targetDir, err)
	}
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	written := []string{config.FileName}
	promptPath := filepath.Join(targetDir, PromptFile)
	if _, err := os.Stat(promptPath); err != nil {
		if err := os.WriteFile(promptPath, []byte(buildExamplePrompt()), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", PromptFile, err)
		}
		written = append(written, PromptFile)
	}

	printSuccess(written)
	return nil
}

func printSuccess(written []string) {
	fmt.Fprintf(ux.Out, "\n%s%s✓ Initialized mdfiles%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Fprintf(ux.Out, "  Created:\n")
	for _, name := range written {
		fmt.Fprintf(ux.Out, "    %s%s%s\n", ux.Cyan, name, ux.Reset)
	}
	fmt.Fprintf(ux.Out, "\n  Next steps:\n")
	fmt.Fprintf(ux.Out, "    1. Edit %s%s%s to point at your model CLI\n", ux.Cyan, config.FileName, ux.Reset)
	fmt.Fprintf(ux.Out, "    2. Run %smdfiles run --prompt-file %s%s\n\n", ux.Cyan, PromptFile, ux.Reset)
}
