package ux

import (
	"fmt"

	"github.com/jorge-barreto/mdfiles/internal/workspace"
)

// RenderManifest prints the last run recorded in an output directory.
func RenderManifest(dir string, m *workspace.Manifest) {
	if m == nil {
		fmt.Fprintf(Out, "%sNo runs recorded in %s%s\n", Dim, dir, Reset)
		return
	}

	fmt.Fprintf(Out, "%sRun:%s     %s\n", Bold, Reset, m.RunID)
	fmt.Fprintf(Out, "%sSource:%s  %s (%s)\n", Bold, Reset, m.Source, m.Mode)
	fmt.Fprintf(Out, "%sFormat:%s  %s\n", Bold, Reset, m.Format)
	when := m.Start.Format("2006-01-02 15:04:05")
	if m.Duration != "" {
		when += fmt.Sprintf(" (%s)", m.Duration)
	}
	fmt.Fprintf(Out, "%sStarted:%s %s\n", Bold, Reset, when)

	fmt.Fprintf(Out, "\n%sWritten:%s\n", Bold, Reset)
	if len(m.Written) == 0 {
		fmt.Fprintf(Out, "  %s(none)%s\n", Dim, Reset)
	}
	for _, name := range m.Written {
		fmt.Fprintf(Out, "  %s✓%s %s\n", Green, Reset, name)
	}

	if len(m.Deleted) > 0 {
		fmt.Fprintf(Out, "\n%sDeleted:%s\n", Bold, Reset)
		for _, name := range m.Deleted {
			fmt.Fprintf(Out, "  %s✗%s %s\n", Red, Reset, name)
		}
	}
	fmt.Fprintln(Out)
}
