package cli

// This file contains the generate command: the discovery, parsing,
// ordering, synthesis and emission pipeline. Diagnostics go to stderr;
// stdout carries only the emitted plan.

import (
	"os"
	"strings"

	"github.com/ctestplan/ctestplan/ctest"
	"github.com/ctestplan/ctestplan/model"
	"github.com/ctestplan/ctestplan/plan"
	"github.com/urfave/cli/v2"
)

func (a *App) generate(ctx *cli.Context) error {
	layout, err := a.resolveLayout(ctx)
	if err != nil {
		return err
	}

	mode, err := resolveMode(ctx.String("mode"), os.Getenv(model.ModeEnvVar))
	if err != nil {
		return err
	}

	a.logger.Debug().
		Str("tests_dir", layout.TestsDir).
		Str("workspace", layout.WorkspaceDir).
		Str("mode", string(mode)).
		Msg("Resolved layout")

	listing, err := ctest.List(a.logger, layout.TestsDir)
	if err != nil {
		a.logger.Error().Err(err).Msg("Test discovery failed")
		return err
	}

	names, err := ctest.Parse(strings.NewReader(listing), model.ProjectPrefix, model.Delimiter)
	if err != nil {
		return err
	}

	a.logger.Debug().Int("tests", len(names)).Msg("Parsed registry listing")

	runs, err := plan.Build(a.planConfig(layout, mode), names)
	if err != nil {
		a.logger.Error().Err(err).Msg("Plan synthesis failed")
		return err
	}

	a.logger.Info().
		Int("runs", len(runs)).
		Str("mode", string(mode)).
		Msg("Generated execution plan")

	return plan.Encode(os.Stdout, runs)
}

// planConfig wires the fixed model tables and the resolved roots into a
// pipeline configuration.
func (a *App) planConfig(layout Layout, mode model.Mode) plan.Config {
	return plan.Config{
		Delimiter:     model.Delimiter,
		Prefix:        model.ProjectPrefix,
		CategoryOrder: model.CategoryOrder,
		ExtraInfiles:  model.ExtraInfiles,
		TestsDirRel:   testsDirRel,
		TestsDir:      layout.TestsDir,
		WorkspaceDir:  layout.WorkspaceDir,
		Mode:          mode,
	}
}
