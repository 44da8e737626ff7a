package cli

// This file contains the list command for inspecting the discovered tests
// in execution order without emitting a plan.

import (
	"fmt"
	"strings"

	"github.com/ctestplan/ctestplan/ctest"
	"github.com/ctestplan/ctestplan/model"
	"github.com/ctestplan/ctestplan/plan"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	layout, err := a.resolveLayout(ctx)
	if err != nil {
		return err
	}

	listing, err := ctest.List(a.logger, layout.TestsDir)
	if err != nil {
		a.logger.Error().Err(err).Msg("Test discovery failed")
		return err
	}

	names, err := ctest.Parse(strings.NewReader(listing), model.ProjectPrefix, model.Delimiter)
	if err != nil {
		return err
	}

	tests, err := plan.Classify(plan.Config{
		Delimiter:     model.Delimiter,
		CategoryOrder: model.CategoryOrder,
	}, names)
	if err != nil {
		return err
	}

	if len(tests) == 0 {
		fmt.Println("No tests registered")
		return nil
	}

	fmt.Printf("\n=== Registered tests (%d total) ===\n\n", len(tests))
	for i, test := range tests {
		fmt.Printf("%3d  [%d] %-12s %s\n", i+1, test.Priority, test.Category, test.Name)
	}
	fmt.Println()

	return nil
}
