package source

import (
	"fmt"
	"os/exec"
	"strings"
)

// Preflight checks that the named binaries are available on PATH.
func Preflight(bins ...string) error {
	var missing []string
	for _, bin := range bins {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required binaries not found in PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
