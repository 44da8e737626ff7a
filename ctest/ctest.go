package ctest

// ctest.go provides the discovery half of the pipeline: invoking the
// ctest registry listing and capturing its raw output.

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// List runs "ctest -N" in the given tests directory and returns its full
// standard output. A non-zero exit is fatal for plan generation, so the
// error carries the first meaningful line of ctest's stderr.
func List(logger zerolog.Logger, dir string) (string, error) {
	cmd := exec.Command("ctest", "-N")
	cmd.Dir = dir

	// Capture stdout and stderr separately
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().Str("dir", dir).Msg("Listing registered tests with ctest -N")

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())

		lines := strings.Split(errMsg, "\n")
		if len(lines) > 0 && lines[0] != "" {
			return "", fmt.Errorf("ctest listing failed in %q: %s", dir, lines[0])
		}

		return "", fmt.Errorf("ctest listing failed in %q: %w", dir, err)
	}

	return stdout.String(), nil
}
