package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jorge-barreto/mdfiles/internal/compose"
	"github.com/jorge-barreto/mdfiles/internal/config"
	"github.com/jorge-barreto/mdfiles/internal/docs"
	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
	"github.com/jorge-barreto/mdfiles/internal/runner"
	"github.com/jorge-barreto/mdfiles/internal/scaffold"
	"github.com/jorge-barreto/mdfiles/internal/source"
	"github.com/jorge-barreto/mdfiles/internal/ux"
	"github.com/jorge-barreto/mdfiles/internal/workspace"
	cli "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.Command{
		Name:        "mdfiles",
		Usage:       "Extract named files from LLM markdown output",
		Description: "Run 'mdfiles docs' for documentation on header formats, streaming, config, and more.",
		Commands: []*cli.Command{
			extractCmd(),
			streamCmd(),
			runCmd(),
			serializeCmd(),
			statusCmd(),
			formatsCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract files from a markdown document",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Force a header format (see 'mdfiles formats')"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write extracted files into this directory"},
			&cli.StringFlag{Name: "output", Value: "text", Usage: "Report format: text, json, or yaml"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be written without writing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			output := cmd.String("output")
			if output != "text" && output != "json" && output != "yaml" {
				return fmt.Errorf("unknown --output %q (must be text, json, or yaml)", output)
			}
			if output != "text" {
				ux.Out = os.Stderr
			}

			label, doc, err := readInput(cmd.Args().First())
			if err != nil {
				return err
			}

			format := cfg.Format
			if cmd.IsSet("format") {
				format = cmd.String("format")
			}
			r := &runner.Runner{
				Format: format,
				OutDir: outDir(cmd, cfg),
				DryRun: cmd.Bool("dry-run"),
				Label:  label,
			}
			res, err := r.Extract(string(doc))
			if err != nil {
				return err
			}
			return report(output, res)
		},
	}
}

func streamCmd() *cli.Command {
	return &cli.Command{
		Name:      "stream",
		Usage:     "Stream markdown through the live extractor",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "chunk-size", Usage: "Bytes per chunk (default from config, 64)"},
			&cli.BoolFlag{Name: "stream-json", Usage: "Input is a stream-json event log"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write extracted files into this directory"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be written without writing"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Hide file content while streaming"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			name := cmd.Args().First()
			in := io.Reader(os.Stdin)
			label := "stdin"
			if name != "" && name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				in, label = f, name
			}

			r := streamRunner(cfg, outDir(cmd, cfg), label)
			r.DryRun = cmd.Bool("dry-run")
			r.Quiet = cmd.Bool("quiet")
			if cmd.IsSet("chunk-size") {
				r.ChunkSize = int(cmd.Int("chunk-size"))
				if r.ChunkSize <= 0 {
					return fmt.Errorf("--chunk-size must be > 0")
				}
			}
			if cmd.Bool("stream-json") {
				r.Source = config.SourceStreamJSON
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = r.Stream(ctx, in)
			return err
		},
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the generator command and extract its output live",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "command", Aliases: []string{"c"}, Usage: "Generator command (overrides config)"},
			&cli.StringFlag{Name: "prompt", Aliases: []string{"p"}, Usage: "Prompt text, available as $PROMPT"},
			&cli.StringFlag{Name: "prompt-file", Usage: "Read the prompt from a file, available as $PROMPT_FILE"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write extracted files into this directory"},
			&cli.BoolFlag{Name: "stream-json", Usage: "Generator prints a stream-json event log"},
			&cli.IntFlag{Name: "timeout", Usage: "Generator timeout in minutes (default from config, 10)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show what would be written without writing"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Hide file content while streaming"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			script := cfg.Command
			if cmd.IsSet("command") {
				script = cmd.String("command")
			}
			if strings.TrimSpace(script) == "" {
				return fmt.Errorf("no generator command: set 'command' in %s or pass --command", config.FileName)
			}
			if cmd.IsSet("prompt") && cmd.IsSet("prompt-file") {
				return fmt.Errorf("--prompt and --prompt-file are mutually exclusive")
			}

			vars, cleanup, err := promptVars(cmd.String("prompt"), cmd.String("prompt-file"))
			if err != nil {
				return err
			}
			defer cleanup()

			if err := source.Preflight("bash"); err != nil {
				return err
			}

			envDir := cfg.Dir
			if envDir == "" {
				if envDir, err = os.Getwd(); err != nil {
					return err
				}
			}
			dotenv, err := source.LoadDotEnv(envDir)
			if err != nil {
				return err
			}

			timeout := cfg.Timeout
			if cmd.IsSet("timeout") {
				timeout = int(cmd.Int("timeout"))
				if timeout <= 0 {
					return fmt.Errorf("--timeout must be > 0")
				}
			}

			g := &source.Generator{
				Script:  script,
				Dir:     cfg.Dir,
				Vars:    vars,
				DotEnv:  dotenv,
				Timeout: time.Duration(timeout) * time.Minute,
				Stderr:  os.Stderr,
			}
			r := streamRunner(cfg, outDir(cmd, cfg), script)
			r.DryRun = cmd.Bool("dry-run")
			r.Quiet = cmd.Bool("quiet")
			if cmd.Bool("stream-json") {
				r.Source = config.SourceStreamJSON
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			_, err = r.Generate(ctx, g)
			return err
		},
	}
}

func serializeCmd() *cli.Command {
	return &cli.Command{
		Name:      "serialize",
		Usage:     "Render files as Bold Format markdown",
		ArgsUsage: "<path>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Value: ".", Usage: "Directory file names are relative to"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("at least one path is required")
			}
			files, err := collectFiles(cmd.String("root"), paths)
			if err != nil {
				return err
			}
			fmt.Println(compose.Serialize(files, compose.Languages(cfg.Languages)))
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show the last run recorded in an output directory",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir := cmd.Args().First()
			if dir == "" {
				dir = outDir(cmd, cfg)
			}
			if dir == "" {
				return fmt.Errorf("directory argument is required (no out-dir configured)")
			}
			m, err := workspace.LoadManifest(dir)
			if err != nil {
				return fmt.Errorf("loading manifest: %w", err)
			}
			ux.RenderManifest(dir, m)
			return nil
		},
	}
}

func formatsCmd() *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "List recognized header formats in priority order",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Print("\nHeader formats (tried in this order):\n\n")
			for i, f := range fileblocks.Formats() {
				marker := ""
				if f.Label == fileblocks.StreamFormat {
					marker = fmt.Sprintf(" %s(streaming)%s", ux.Dim, ux.Reset)
				}
				fmt.Printf("  %d. %-18s %s%s\n", i+1, f.Key, f.Label, marker)
			}
			fmt.Println("\nRun 'mdfiles docs formats' for examples.")
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example " + config.FileName + " and prompt",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'mdfiles docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// loadConfig finds the nearest config above the working directory.
func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Discover(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// outDir returns --out, or the configured out-dir resolved against the
// config file's directory.
func outDir(cmd *cli.Command, cfg *config.Config) string {
	if cmd.IsSet("out") {
		return cmd.String("out")
	}
	if cfg.OutDir == "" || filepath.IsAbs(cfg.OutDir) || cfg.Dir == "" {
		return cfg.OutDir
	}
	return filepath.Join(cfg.Dir, cfg.OutDir)
}

// streamRunner returns a runner carrying the configured streaming options.
func streamRunner(cfg *config.Config, out, label string) *runner.Runner {
	return &runner.Runner{
		OutDir:    out,
		ChunkSize: cfg.ChunkSize,
		Source:    cfg.Source,
		Label:     label,
	}
}

// readInput reads a whole file, or stdin for "" and "-".
func readInput(name string) (string, []byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return "stdin", data, err
	}
	data, err := os.ReadFile(name)
	return name, data, err
}

func report(output string, res *runner.Outcome) error {
	result := fileblocks.Result{Files: res.Files, Format: res.Format}
	switch output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, f := range res.Files {
		ux.FileHeader(f.Name, res.Format)
		for _, line := range strings.Split(f.Text, "\n") {
			ux.CodeLine(line)
		}
	}
	ux.Summary(res.Format, len(res.Files), 0, res.Duration)
	return nil
}

// promptVars builds $PROMPT and $PROMPT_FILE. Inline prompts are written to a
// temporary file that cleanup removes.
func promptVars(prompt, promptFile string) (map[string]string, func(), error) {
	cleanup := func() {}
	if promptFile != "" {
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return nil, cleanup, fmt.Errorf("reading prompt file: %w", err)
		}
		abs, err := filepath.Abs(promptFile)
		if err != nil {
			return nil, cleanup, err
		}
		return map[string]string{"PROMPT": string(data), "PROMPT_FILE": abs}, cleanup, nil
	}

	f, err := os.CreateTemp("", "mdfiles-prompt-*.md")
	if err != nil {
		return nil, cleanup, err
	}
	cleanup = func() { os.Remove(f.Name()) }
	if _, err := f.WriteString(prompt); err != nil {
		f.Close()
		return nil, cleanup, err
	}
	if err := f.Close(); err != nil {
		return nil, cleanup, err
	}
	return map[string]string{"PROMPT": prompt, "PROMPT_FILE": f.Name()}, cleanup, nil
}

// collectFiles reads each path under root, descending into directories and
// skipping dot-directories. Names are slash-separated and relative to root;
// one trailing newline is dropped from each file, matching what
// workspace.Apply adds back.
func collectFiles(root string, paths []string) ([]fileblocks.File, error) {
	var files []fileblocks.File
	add := func(rel string) error {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return err
		}
		files = append(files, fileblocks.File{Name: filepath.ToSlash(filepath.Clean(rel)), Text: strings.TrimSuffix(string(data), "\n")})
		return nil
	}
	for _, p := range paths {
		full := filepath.Join(root, p)
		info, err := os.Stat(full)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := add(p); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != full && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			return add(rel)
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
