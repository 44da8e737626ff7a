package plan

// This file contains the plan pipeline stages downstream of parsing:
// classification, ordering, descriptor synthesis and JSON emission.

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/ctestplan/ctestplan/model"
)

// Config carries the fixed tables and directory roots the pipeline needs.
// Callers wire in the model defaults; tests substitute their own tables.
type Config struct {
	// Delimiter separates segments inside a flattened identifier.
	Delimiter string
	// Prefix is the project token used when naming metadata directories.
	Prefix string
	// CategoryOrder ranks categories; unlisted categories sort after all
	// listed ones.
	CategoryOrder map[string]int
	// ExtraInfiles maps identifiers to additional staged paths.
	ExtraInfiles map[string][]string
	// TestsDirRel is the tests directory relative to the runner's checkout;
	// it prefixes every descriptor's working directory.
	TestsDirRel string
	// TestsDir is the absolute tests directory of the local build.
	TestsDir string
	// WorkspaceDir is the absolute root that artifact patterns are
	// expressed against.
	WorkspaceDir string
	// Mode controls category filtering.
	Mode model.Mode
}

// Test pairs a canonical identifier with its decoded category, the
// remainder path and the category priority used for ordering.
type Test struct {
	Name      string
	Category  string
	Remainder string
	Priority  int
}

// SplitIdentifier decodes a flattened identifier into its category (the
// first delimiter-separated segment) and the remainder. Only the first
// delimiter occurrence splits; later occurrences stay part of the
// remainder. An identifier without a delimiter, or with an empty category
// or remainder, cannot be placed in the build tree and is an error.
func SplitIdentifier(name, delimiter string) (category, remainder string, err error) {
	category, remainder, found := strings.Cut(name, delimiter)
	if !found {
		return "", "", fmt.Errorf("malformed identifier %q: missing %q delimiter", name, delimiter)
	}
	if category == "" || remainder == "" {
		return "", "", fmt.Errorf("malformed identifier %q: empty segment around %q delimiter", name, delimiter)
	}
	return category, remainder, nil
}

// Classify decodes every identifier and sorts the result ascending by
// (priority, identifier). The comparison is total, so repeated runs over
// the same listing always produce the same order. Duplicate identifiers
// are kept as-is.
func Classify(cfg Config, names []string) ([]Test, error) {
	tests := make([]Test, 0, len(names))
	for _, name := range names {
		category, remainder, err := SplitIdentifier(name, cfg.Delimiter)
		if err != nil {
			return nil, err
		}

		priority, ok := cfg.CategoryOrder[category]
		if !ok {
			priority = len(cfg.CategoryOrder)
		}

		tests = append(tests, Test{
			Name:      name,
			Category:  category,
			Remainder: remainder,
			Priority:  priority,
		})
	}

	sort.Slice(tests, func(i, j int) bool {
		if tests[i].Priority != tests[j].Priority {
			return tests[i].Priority < tests[j].Priority
		}
		return tests[i].Name < tests[j].Name
	})

	return tests, nil
}

// Build synthesizes one run descriptor per identifier, in execution order.
// Benchmark tests are dropped entirely in diff mode; surviving benchmark
// invocations get a timeout override, and unit tests get a single artifact
// capture pattern for their metadata directory.
func Build(cfg Config, names []string) ([]model.RunDescriptor, error) {
	tests, err := Classify(cfg, names)
	if err != nil {
		return nil, err
	}

	runs := make([]model.RunDescriptor, 0, len(tests))
	for _, test := range tests {
		if test.Category == model.CategoryBenchmark && cfg.Mode == model.ModeDiff {
			continue
		}

		path := filepath.Join(cfg.TestsDirRel, test.Category, test.Remainder)
		dir, base := filepath.Dir(path), filepath.Base(path)

		metadataDir := filepath.Join("CMakeFiles", cfg.Prefix+cfg.Delimiter+test.Name+".dir")

		infiles := []string{base, metadataDir}
		infiles = append(infiles, cfg.ExtraInfiles[test.Name]...)

		command := "./" + shellescape.Quote(base)
		if test.Category == model.CategoryBenchmark {
			command = model.BenchmarkTimeoutPrefix + command
		}

		outfilePaths := []string{}
		if test.Category == model.CategoryUnit {
			pattern, err := outfilePattern(cfg, metadataDir)
			if err != nil {
				return nil, err
			}
			outfilePaths = append(outfilePaths, pattern)
		}

		runs = append(runs, model.RunDescriptor{
			Cd:           dir,
			Commands:     command,
			Infiles:      infiles,
			Name:         test.Name,
			OutfilePaths: outfilePaths,
		})
	}

	return runs, nil
}

// outfilePattern builds the capture pattern for a unit test's metadata
// directory: its absolute path expressed relative to the workspace root,
// with literal dots escaped and a wildcard suffix appended.
func outfilePattern(cfg Config, metadataDir string) (string, error) {
	abs := filepath.Join(cfg.TestsDir, model.CategoryUnit, metadataDir)
	rel, err := filepath.Rel(cfg.WorkspaceDir, abs)
	if err != nil {
		return "", fmt.Errorf("metadata directory %q not expressible under workspace %q: %w", abs, cfg.WorkspaceDir, err)
	}
	escaped := strings.ReplaceAll(filepath.ToSlash(rel), ".", `\.`)
	return `\./` + escaped + ".+", nil
}

// Encode serializes the plan to w as an indented JSON array with a trailing
// newline. An empty plan encodes as [], never null.
func Encode(w io.Writer, runs []model.RunDescriptor) error {
	if runs == nil {
		runs = []model.RunDescriptor{}
	}

	data, err := json.MarshalIndent(runs, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}
