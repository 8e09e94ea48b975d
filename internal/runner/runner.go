// Package runner drives one extraction run from input to output directory.
package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jorge-barreto/mdfiles/internal/config"
	"github.com/jorge-barreto/mdfiles/internal/fileblocks"
	"github.com/jorge-barreto/mdfiles/internal/source"
	"github.com/jorge-barreto/mdfiles/internal/ux"
	"github.com/jorge-barreto/mdfiles/internal/workspace"
)

const (
	ModeBatch  = "batch"
	ModeStream = "stream"
)

// Runner holds the options shared by every extraction mode.
type Runner struct {
	Format    string // forced format key for batch extraction; "" detects
	OutDir    string // where files are written; "" only reports them
	DryRun    bool   // report what would be written without touching OutDir
	Quiet     bool   // hide code lines in the live stream display
	ChunkSize int
	Source    string // config.SourceRaw or config.SourceStreamJSON
	Label     string // input description recorded in the manifest
}

// Outcome is what one run produced.
type Outcome struct {
	Format   string
	Files    []fileblocks.File
	Deleted  []string
	Written  []string
	Removed  []string
	Manifest *workspace.Manifest // nil unless files were written
	Duration time.Duration
}

// Extract runs batch extraction over a complete document.
func (r *Runner) Extract(document string) (*Outcome, error) {
	start := time.Now()
	res, err := fileblocks.Extract(document, r.Format)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Format: res.Format, Files: res.Files}
	if err := r.materialize(ModeBatch, out); err != nil {
		return out, err
	}
	out.Duration = time.Since(start)
	return out, nil
}

// Stream feeds in through the streaming extractor, echoing events as they
// arrive, and materializes the collected files once the input ends.
func (r *Runner) Stream(ctx context.Context, in io.Reader) (*Outcome, error) {
	start := time.Now()
	col := fileblocks.NewCollector()
	parser := fileblocks.NewStreamParser(fileblocks.Chain(col.Callbacks(), r.display()))

	if err := r.feed(ctx, in, parser); err != nil {
		return nil, err
	}
	parser.Flush()

	out := r.collected(col)
	if err := r.materialize(ModeStream, out); err != nil {
		return out, err
	}
	out.Duration = time.Since(start)
	ux.Summary(out.Format, len(out.Files), len(out.Deleted), out.Duration)
	return out, nil
}

// Generate runs g and streams its stdout like Stream. A non-zero exit still
// materializes what was extracted and is then reported as an error.
func (r *Runner) Generate(ctx context.Context, g *source.Generator) (*Outcome, error) {
	start := time.Now()
	col := fileblocks.NewCollector()
	parser := fileblocks.NewStreamParser(fileblocks.Chain(col.Callbacks(), r.display()))

	code, err := g.Run(ctx, func(stdout io.Reader) error {
		return r.feed(ctx, stdout, parser)
	})
	if err != nil {
		return nil, err
	}
	parser.Flush()

	out := r.collected(col)
	if err := r.materialize(ModeStream, out); err != nil {
		return out, err
	}
	out.Duration = time.Since(start)
	ux.Summary(out.Format, len(out.Files), len(out.Deleted), out.Duration)
	if code != 0 {
		return out, fmt.Errorf("generator exited with code %d", code)
	}
	return out, nil
}

func (r *Runner) feed(ctx context.Context, in io.Reader, parser *fileblocks.StreamParser) error {
	if r.Source == config.SourceStreamJSON {
		res, err := source.DecodeStreamJSON(ctx, in, parser, ux.ToolUse)
		if err != nil {
			return err
		}
		if len(res.PermissionDenials) > 0 {
			var tools []string
			for _, d := range res.PermissionDenials {
				ux.ToolDenied(d.Tool, d.Input)
				tools = append(tools, d.Tool)
			}
			ux.PermissionPrompt(tools)
		}
		return nil
	}
	_, err := source.CopyChunks(ctx, in, parser, r.ChunkSize)
	return err
}

func (r *Runner) display() fileblocks.Callbacks {
	cb := fileblocks.Callbacks{
		OnFileNameChange: ux.FileHeader,
		OnNonCodeLine:    ux.Commentary,
		OnFileDelete:     ux.Deleted,
	}
	if !r.Quiet {
		cb.OnCodeLine = ux.CodeLine
	}
	return cb
}

func (r *Runner) collected(col *fileblocks.Collector) *Outcome {
	out := &Outcome{
		Format:  fileblocks.UnknownFormat,
		Files:   col.Files(),
		Deleted: col.Deleted(),
	}
	if len(out.Files) > 0 || len(out.Deleted) > 0 {
		out.Format = fileblocks.StreamFormat
	}
	return out
}

// materialize writes out.Files into OutDir, removes out.Deleted, and saves
// the run manifest.
func (r *Runner) materialize(mode string, out *Outcome) error {
	if r.OutDir == "" {
		return nil
	}
	if r.DryRun {
		r.dryRunPrint(out)
		return nil
	}

	m := workspace.NewManifest(mode, r.Label)
	written, removed, err := workspace.Apply(r.OutDir, out.Files, out.Deleted)
	out.Written, out.Removed = written, removed
	for _, name := range written {
		ux.Written(filepath.Join(r.OutDir, name))
	}
	for _, name := range removed {
		ux.Removed(filepath.Join(r.OutDir, name))
	}
	if err != nil {
		return err
	}

	m.Finish(out.Format, written, removed)
	if err := m.Save(r.OutDir); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	out.Manifest = m
	return nil
}

// dryRunPrint lists what materialize would do, checking names the same way.
func (r *Runner) dryRunPrint(out *Outcome) {
	fmt.Fprintf(ux.Out, "\n%sDry run: %s%s\n", ux.Bold, r.OutDir, ux.Reset)
	for _, f := range out.Files {
		if _, err := workspace.Resolve(r.OutDir, f.Name); err != nil {
			ux.Warn(err.Error())
			continue
		}
		fmt.Fprintf(ux.Out, "  %swrite%s  %s %s(%d bytes)%s\n", ux.Green, ux.Reset, f.Name, ux.Dim, len(f.Text), ux.Reset)
	}
	for _, name := range out.Deleted {
		fmt.Fprintf(ux.Out, "  %sremove%s %s\n", ux.Red, ux.Reset, name)
	}
	fmt.Fprintln(ux.Out)
}
