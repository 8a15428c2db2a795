// Package coverage parses external coverage artifacts into per-file
// line counts. Parsers are input adapters: they are best-effort and
// never fail the phase that invoked them.
package coverage

import (
	"bufio"
	"encoding/json"
	"strconv"
	"strings"

	"specmap/internal/manifest"
	"specmap/internal/paths"
)

// ParseLcov parses an lcov.info tracefile. Only SF/DA records are
// consumed; everything else is skipped.
func ParseLcov(data []byte) (manifest.CoverageData, error) {
	cov := manifest.CoverageData{}

	var file string
	var total, covered int

	flush := func() {
		if file != "" {
			cov[file] = manifest.FileCoverage{Total: total, Covered: covered}
		}
		file, total, covered = "", 0, 0
	}

	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "SF:"):
			flush()
			file = paths.Normalize(strings.TrimPrefix(line, "SF:"))
		case strings.HasPrefix(line, "DA:"):
			parts := strings.Split(strings.TrimPrefix(line, "DA:"), ",")
			if len(parts) < 2 {
				continue
			}
			hits, err := strconv.Atoi(parts[1])
			if err != nil {
				continue
			}
			total++
			if hits > 0 {
				covered++
			}
		case line == "end_of_record":
			flush()
		}
	}
	flush()

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cov, nil
}

// summaryEntry mirrors the per-file shape of a coverage-summary.json
// produced by istanbul/jest.
type summaryEntry struct {
	Lines struct {
		Total   int `json:"total"`
		Covered int `json:"covered"`
	} `json:"lines"`
}

// ParseSummaryJSON parses an istanbul coverage-summary.json. The
// "total" rollup entry is ignored; per-file entries are kept.
func ParseSummaryJSON(data []byte) (manifest.CoverageData, error) {
	var raw map[string]summaryEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cov := manifest.CoverageData{}
	for file, entry := range raw {
		if file == "total" {
			continue
		}
		cov[paths.Normalize(file)] = manifest.FileCoverage{
			Total:   entry.Lines.Total,
			Covered: entry.Lines.Covered,
		}
	}
	return cov, nil
}

// ArtifactPaths is the fixed ordered list of conventional coverage
// artifact locations. Discovery stops at the first parse success.
var ArtifactPaths = []struct {
	Path  string
	Parse func([]byte) (manifest.CoverageData, error)
}{
	{"coverage/lcov.info", ParseLcov},
	{"lcov.info", ParseLcov},
	{"coverage/coverage-summary.json", ParseSummaryJSON},
	{"coverage-summary.json", ParseSummaryJSON},
	{"coverage/coverage-final.json", ParseSummaryJSON},
}
