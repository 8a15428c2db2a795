// Package quality scores test files with deterministic heuristics.
// Scores seed downstream review; they carry no semantic understanding
// of what the tests assert.
package quality

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
)

var (
	reTestDecl  = regexp.MustCompile(`^\s*(?:it|test)(?:\.\w+)?\s*\(`)
	reAssertion = regexp.MustCompile(`\b(expect|assert|should)\s*[(.]`)
	reSkipped   = regexp.MustCompile(`\b(?:it|test|describe)\.(skip|only|todo)\s*\(`)
	reSnapshot  = regexp.MustCompile(`toMatchSnapshot\s*\(`)
)

// ScoreFile computes a 0-1 quality score for one test file. Signals:
// tests, assertions, skipped, snapshots, lines.
func ScoreFile(path, content string) manifest.FileQuality {
	lines := strings.Split(content, "\n")

	tests := 0
	assertions := 0
	skipped := 0
	snapshots := 0

	for _, line := range lines {
		if reTestDecl.MatchString(line) {
			tests++
		}
		assertions += len(reAssertion.FindAllString(line, -1))
		if reSkipped.MatchString(line) {
			skipped++
		}
		if reSnapshot.MatchString(line) {
			snapshots++
		}
	}

	score := 0.0
	if tests > 0 {
		// Assertion density is the dominant signal: a healthy test
		// averages at least one assertion.
		density := float64(assertions) / float64(tests)
		switch {
		case density >= 2:
			score = 1.0
		case density >= 1:
			score = 0.8
		case density > 0:
			score = 0.5
		default:
			score = 0.2
		}

		// Skipped or focused tests and snapshot-only assertions chip
		// the score down.
		if skipped > 0 {
			score -= 0.1 * float64(skipped)
		}
		if snapshots > 0 && assertions == snapshots {
			score -= 0.2
		}
		if score < 0 {
			score = 0
		}
	}

	signals := map[string]int{
		"tests":      tests,
		"assertions": assertions,
		"skipped":    skipped,
		"snapshots":  snapshots,
		"lines":      len(lines),
	}
	if tests > 0 {
		signals["avgTestLines"] = len(lines) / tests
	}

	return manifest.FileQuality{
		FilePath: path,
		Score:    score,
		Signals:  signals,
	}
}
