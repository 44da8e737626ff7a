package plan

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ctestplan/ctestplan/model"
	"github.com/stretchr/testify/require"
)

func testConfig(mode model.Mode) Config {
	return Config{
		Delimiter:     model.Delimiter,
		Prefix:        model.ProjectPrefix,
		CategoryOrder: model.CategoryOrder,
		ExtraInfiles:  model.ExtraInfiles,
		TestsDirRel:   filepath.Join("..", "build", "tests"),
		TestsDir:      "/workspace/memgraph/build/tests",
		WorkspaceDir:  "/workspace",
		Mode:          mode,
	}
}

func TestSplitIdentifier(t *testing.T) {
	tests := []struct {
		name          string
		identifier    string
		delimiter     string
		wantCategory  string
		wantRemainder string
		wantErr       bool
	}{
		{
			name:          "simple",
			identifier:    "unit__bfs",
			delimiter:     "__",
			wantCategory:  "unit",
			wantRemainder: "bfs",
		},
		{
			name:          "delimiter reappears in leaf",
			identifier:    "benchmark__query__eval",
			delimiter:     "__",
			wantCategory:  "benchmark",
			wantRemainder: "query__eval",
		},
		{
			name:          "custom delimiter",
			identifier:    "unit--bfs",
			delimiter:     "--",
			wantCategory:  "unit",
			wantRemainder: "bfs",
		},
		{
			name:       "no delimiter",
			identifier: "manual",
			delimiter:  "__",
			wantErr:    true,
		},
		{
			name:       "empty category",
			identifier: "__bfs",
			delimiter:  "__",
			wantErr:    true,
		},
		{
			name:       "empty remainder",
			identifier: "unit__",
			delimiter:  "__",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, remainder, err := SplitIdentifier(tt.identifier, tt.delimiter)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantCategory, category)
			require.Equal(t, tt.wantRemainder, remainder)
		})
	}
}

func TestClassify_Ordering(t *testing.T) {
	names := []string{
		"manual__query_planner",
		"unit__skiplist",
		"benchmark__expansion",
		"unit__bfs",
		"concurrent__network_read_hang",
	}

	tests, err := Classify(testConfig(model.ModeRelease), names)
	require.NoError(t, err)

	ordered := make([]string, 0, len(tests))
	for _, test := range tests {
		ordered = append(ordered, test.Name)
	}

	// unit first, then concurrent, then everything else lexicographically.
	require.Equal(t, []string{
		"unit__bfs",
		"unit__skiplist",
		"concurrent__network_read_hang",
		"benchmark__expansion",
		"manual__query_planner",
	}, ordered)

	require.Equal(t, 0, tests[0].Priority)
	require.Equal(t, 1, tests[2].Priority)
	require.Equal(t, len(model.CategoryOrder), tests[3].Priority)
	require.Equal(t, len(model.CategoryOrder), tests[4].Priority)
}

func TestClassify_CustomTable(t *testing.T) {
	cfg := Config{
		Delimiter:     "__",
		CategoryOrder: map[string]int{"benchmark": 0},
	}

	tests, err := Classify(cfg, []string{"unit__bfs", "benchmark__expansion"})
	require.NoError(t, err)
	require.Equal(t, "benchmark__expansion", tests[0].Name)
	require.Equal(t, "unit__bfs", tests[1].Name)
}

func TestBuild_ReleaseMode(t *testing.T) {
	runs, err := Build(testConfig(model.ModeRelease), []string{"benchmark__bar", "unit__foo"})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	unit := runs[0]
	require.Equal(t, "unit__foo", unit.Name)
	require.Equal(t, filepath.Join("..", "build", "tests", "unit"), unit.Cd)
	require.Equal(t, "./foo", unit.Commands)
	require.Equal(t, []string{"foo", filepath.Join("CMakeFiles", "memgraph__unit__foo.dir")}, unit.Infiles)
	require.Equal(t, []string{`\./memgraph/build/tests/unit/CMakeFiles/memgraph__unit__foo\.dir.+`}, unit.OutfilePaths)

	benchmark := runs[1]
	require.Equal(t, "benchmark__bar", benchmark.Name)
	require.Equal(t, filepath.Join("..", "build", "tests", "benchmark"), benchmark.Cd)
	require.Equal(t, "TIMEOUT=600 ./bar", benchmark.Commands)
	require.Equal(t, []string{"bar", filepath.Join("CMakeFiles", "memgraph__benchmark__bar.dir")}, benchmark.Infiles)
	require.Empty(t, benchmark.OutfilePaths)
}

func TestBuild_DiffModeDropsBenchmarks(t *testing.T) {
	runs, err := Build(testConfig(model.ModeDiff), []string{"benchmark__bar", "unit__foo"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "unit__foo", runs[0].Name)
}

func TestBuild_CdAndBasenameReconstructPath(t *testing.T) {
	cfg := testConfig(model.ModeRelease)

	runs, err := Build(cfg, []string{"benchmark__query__eval"})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	// The delimiter inside the leaf name stays literal.
	require.Equal(t, "TIMEOUT=600 ./query__eval", runs[0].Commands)
	require.Equal(t, "query__eval", runs[0].Infiles[0])
	require.Equal(t,
		filepath.Join(cfg.TestsDirRel, "benchmark", "query__eval"),
		filepath.Join(runs[0].Cd, runs[0].Infiles[0]))
}

func TestBuild_FswatcherExtraInfiles(t *testing.T) {
	for _, mode := range []model.Mode{model.ModeRelease, model.ModeDiff} {
		runs, err := Build(testConfig(mode), []string{"unit__fswatcher"})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		require.Equal(t, []string{
			"fswatcher",
			filepath.Join("CMakeFiles", "memgraph__unit__fswatcher.dir"),
			filepath.Join("..", "data"),
		}, runs[0].Infiles)
	}
}

func TestBuild_MalformedIdentifier(t *testing.T) {
	runs, err := Build(testConfig(model.ModeRelease), []string{"unit__foo", "manual"})
	require.Error(t, err)
	require.Nil(t, runs)
	require.Contains(t, err.Error(), "manual")
}

func TestBuild_DuplicateIdentifiersKept(t *testing.T) {
	runs, err := Build(testConfig(model.ModeRelease), []string{"unit__foo", "unit__foo"})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, runs[0], runs[1])
}

func TestEncode(t *testing.T) {
	runs, err := Build(testConfig(model.ModeRelease), []string{"unit__foo"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, runs))

	want := `[
    {
        "cd": "../build/tests/unit",
        "commands": "./foo",
        "infiles": [
            "foo",
            "CMakeFiles/memgraph__unit__foo.dir"
        ],
        "name": "unit__foo",
        "outfile_paths": [
            "\\./memgraph/build/tests/unit/CMakeFiles/memgraph__unit__foo\\.dir.+"
        ]
    }
]
`
	require.Equal(t, want, buf.String())
}

func TestEncode_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	require.Equal(t, "[]\n", buf.String())
}
