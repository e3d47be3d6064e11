package executor

import (
	"fmt"
	"os/exec"
	"strings"
)

// EnsureBinaries verifies that every required external command is on
// PATH. All missing commands are reported in a single error so the
// user can fix them in one pass instead of one failure at a time.
func EnsureBinaries(bins []string) error {
	var missing []string
	for _, bin := range bins {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required command(s): %s", strings.Join(missing, ", "))
	}

	return nil
}
