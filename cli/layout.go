package cli

// This file contains the directory layout derivation. The generator works
// against two roots at fixed relative offsets from a base directory: the
// build's tests directory (where the ctest registry lives) and the
// workspace root (which artifact patterns are expressed against). Every
// root is flag-overridable so CI checkouts with a different shape can
// still generate identical plans.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctestplan/ctestplan/model"
	"github.com/urfave/cli/v2"
)

// testsDirRel is the tests directory location relative to the runner's
// checkout; it prefixes every descriptor's working directory.
var testsDirRel = filepath.Join("..", "build", "tests")

// Layout holds the resolved absolute roots for one generation run.
type Layout struct {
	TestsDir     string
	WorkspaceDir string
}

// deriveLayout fills in unset roots from the base directory: the tests
// directory sits at <base>/../build/tests and the workspace root two
// levels above the base.
func deriveLayout(baseDir, testsDir, workspaceDir string) Layout {
	if testsDir == "" {
		testsDir = filepath.Join(baseDir, testsDirRel)
	}
	if workspaceDir == "" {
		workspaceDir = filepath.Join(baseDir, "..", "..")
	}
	return Layout{
		TestsDir:     filepath.Clean(testsDir),
		WorkspaceDir: filepath.Clean(workspaceDir),
	}
}

func (a *App) resolveLayout(ctx *cli.Context) (Layout, error) {
	baseDir := ctx.String("base-dir")
	testsDir := ctx.String("tests-dir")
	workspaceDir := ctx.String("workspace")

	if baseDir == "" && (testsDir == "" || workspaceDir == "") {
		exe, err := os.Executable()
		if err != nil {
			return Layout{}, fmt.Errorf("failed to locate executable for layout derivation: %w", err)
		}
		baseDir = filepath.Dir(exe)
	}

	return deriveLayout(baseDir, testsDir, workspaceDir), nil
}

// resolveMode maps the --mode flag, falling back to the PROJECT
// environment variable when the flag is unset.
func resolveMode(flagValue, envValue string) (model.Mode, error) {
	switch flagValue {
	case "":
		return model.ModeFromEnv(envValue), nil
	case string(model.ModeRelease):
		return model.ModeRelease, nil
	case string(model.ModeDiff):
		return model.ModeDiff, nil
	default:
		return "", fmt.Errorf("invalid mode %q: expected %q or %q", flagValue, model.ModeRelease, model.ModeDiff)
	}
}
