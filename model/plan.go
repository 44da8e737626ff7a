package model

import "path/filepath"

// Mode selects which test categories are included in a generated plan.
type Mode string

const (
	ModeRelease Mode = "release"
	ModeDiff    Mode = "diff"
)

const (
	// ModeEnvVar is the environment variable inspected to derive the mode.
	ModeEnvVar = "PROJECT"
	// ModeDiffValue is the ModeEnvVar value that selects diff mode.
	ModeDiffValue = "mg-master-diff"
)

// ModeFromEnv maps the ModeEnvVar value to a Mode. Any value other than
// ModeDiffValue (including an unset variable) means a release plan.
func ModeFromEnv(value string) Mode {
	if value == ModeDiffValue {
		return ModeDiff
	}
	return ModeRelease
}

// Delimiter separates the category and path segments inside a flattened
// test identifier (e.g. "unit__utils__file").
const Delimiter = "__"

// ProjectPrefix is the project token the registry prepends to every test
// name; it is stripped (once, together with the delimiter) during parsing
// and re-attached when naming metadata directories.
const ProjectPrefix = "memgraph"

const (
	CategoryUnit       = "unit"
	CategoryConcurrent = "concurrent"
	CategoryBenchmark  = "benchmark"
)

// CategoryOrder ranks test categories; lower values run earlier. Categories
// not listed here sort after all listed ones, ties broken by identifier.
var CategoryOrder = map[string]int{
	CategoryUnit:       0,
	CategoryConcurrent: 1,
}

// BenchmarkTimeoutPrefix raises the runner's timeout ceiling for benchmark
// invocations. It is an instruction for the downstream runner; the generator
// enforces nothing itself.
const BenchmarkTimeoutPrefix = "TIMEOUT=600 "

// ExtraInfiles maps canonical identifiers to additional paths the runner
// must stage, relative to the test's working directory. Deliberately a
// per-test table: these are narrow exceptions, not a category rule.
var ExtraInfiles = map[string][]string{
	"unit__fswatcher": {filepath.Join("..", "data")},
}

// RunDescriptor instructs the downstream CI runner how to execute one test.
// Fields are declared in alphabetical JSON-key order so the emitted document
// has deterministic, sorted keys.
type RunDescriptor struct {
	// Cd is the working directory for the invocation, relative to the
	// runner's checkout.
	Cd string `json:"cd"`
	// Commands is the shell invocation string, optionally prefixed with a
	// timeout override for the runner.
	Commands string `json:"commands"`
	// Infiles lists the paths the runner must make available before
	// execution: the executable, its build-metadata directory, and any
	// per-test extras.
	Infiles []string `json:"infiles"`
	// Name is the canonical test identifier.
	Name string `json:"name"`
	// OutfilePaths lists regex-like patterns matching artifacts the runner
	// should capture after execution. Empty for most categories.
	OutfilePaths []string `json:"outfile_paths"`
}
