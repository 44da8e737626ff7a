package ctest

// parser.go extracts test identifiers from a ctest listing. The listing is
// semi-structured: entry lines look like "  Test  #3: memgraph__unit__bfs"
// and are interspersed with headers and summaries that are skipped.

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// entryPattern matches the numbered test lines of a ctest listing.
var entryPattern = regexp.MustCompile(`^\s*Test\s+#`)

// Parse scans a registry listing and returns one canonical identifier per
// test entry, in listing order. The identifier is the text after the first
// colon, trimmed, with one leading prefix+delimiter token stripped if
// present. Lines not matching the entry pattern are skipped silently; an
// empty listing yields an empty slice.
func Parse(reader io.Reader, prefix, delimiter string) ([]string, error) {
	names := []string{}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		if !entryPattern.MatchString(line) {
			continue
		}

		_, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		name := strings.TrimSpace(rest)
		name = strings.TrimPrefix(name, prefix+delimiter)
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading listing: %w", err)
	}

	return names, nil
}
