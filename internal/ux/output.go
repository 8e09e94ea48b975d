package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Out receives all progress output. Commands that print machine-readable
// results on stdout point it at stderr.
var Out io.Writer = os.Stdout

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// FileHeader prints the start of a file block.
func FileHeader(name, format string) {
	fmt.Fprintf(Out, "\n%s[%s]%s %s%s▸ %s%s %s(%s)%s\n",
		Dim, timestamp(), Reset, Bold, Cyan, name, Reset, Dim, format, Reset)
}

// CodeLine prints one line of file content.
func CodeLine(line string) {
	fmt.Fprintf(Out, "  %s│%s %s\n", Dim, Reset, line)
}

// Commentary prints a line of prose between file blocks.
func Commentary(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	fmt.Fprintf(Out, "%s%s%s\n", Dim, line, Reset)
}

// Deleted prints a file deletion signalled by an empty block.
func Deleted(name string) {
	fmt.Fprintf(Out, "%s[%s]%s  %s✗ %s (delete)%s\n",
		Dim, timestamp(), Reset, Red, name, Reset)
}

// Written prints a file written to disk.
func Written(path string) {
	fmt.Fprintf(Out, "  %s✓%s %s\n", Green, Reset, path)
}

// Removed prints a file removed from disk.
func Removed(path string) {
	fmt.Fprintf(Out, "  %s✗%s %s\n", Red, Reset, path)
}

// Warn prints a non-fatal warning.
func Warn(msg string) {
	fmt.Fprintf(Out, "  %s⚠ %s%s\n", Yellow, msg, Reset)
}

// ToolUse prints an inline generator tool call.
func ToolUse(name, input string) {
	fmt.Fprintf(Out, "  %s⚡ %s%s %s\n", Cyan, name, Reset, truncate(input))
}

// ToolDenied prints a denied generator tool call.
func ToolDenied(name, input string) {
	fmt.Fprintf(Out, "  %s✗ %s(denied)%s %s\n", Red, name, Reset, truncate(input))
}

// PermissionPrompt prints a permission denial header.
func PermissionPrompt(tools []string) {
	fmt.Fprintf(Out, "\n  %s⚠ Tools denied: %s%s\n", Yellow, strings.Join(tools, ", "), Reset)
}

// Summary prints the closing line of a run.
func Summary(format string, files, deleted int, duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	color := Green
	if files == 0 && deleted == 0 {
		color = Yellow
	}
	fmt.Fprintf(Out, "\n%s[%s]%s  %s%s══ %s: %d file(s), %d deleted (%dm %02ds) ══%s\n\n",
		Dim, timestamp(), Reset, Bold, color, format, files, deleted, m, s, Reset)
}

func truncate(s string) string {
	if len(s) > 80 {
		return s[:77] + "..."
	}
	return s
}
