// Package orphan scans test files for test declarations lacking a
// nearby behavioral-intent annotation.
//
// The scanner is a line-oriented state machine, not a parser. Group
// nesting is tracked with a stack: a group-open line pushes, and a
// bare "});" line pops. The pop rule is approximate: files with
// multiple closes per line or multi-line closing expressions can
// mis-attribute group names. Do not tighten it into real parsing.
package orphan

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
)

var (
	// describe('name', ...) / context(...) / suite(...)
	reGroupOpen = regexp.MustCompile(`^\s*(?:describe|context|suite)(?:\.\w+)?\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	// it('name', ...) / test(...)
	reTestDecl = regexp.MustCompile(`^\s*(?:it|test)(?:\.\w+)?\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	// A bare closing line pops the group stack.
	reGroupClose = regexp.MustCompile(`^\s*\}\s*\)\s*;?\s*$`)
	// Behavioral-intent annotation: // @atom IA-001
	reAnnotation = regexp.MustCompile(`@atom\s+[A-Z]{1,4}-\d+`)
)

// Options bounds a scan.
type Options struct {
	// Lookback is the number of lines scanned backward for an
	// annotation, inclusive of the test-declaration line itself.
	Lookback int
	// MaxBodyLines caps orphan body capture so malformed files cannot
	// cause runaway spans.
	MaxBodyLines int
}

// Scan returns the orphan tests in a file: test declarations with no
// annotation within the lookback window. Orphanhood is recomputed on
// every run.
func Scan(path, content string, opts Options) []manifest.OrphanTest {
	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = 5
	}
	maxBody := opts.MaxBodyLines
	if maxBody <= 0 {
		maxBody = 80
	}

	lines := strings.Split(content, "\n")
	var orphans []manifest.OrphanTest
	var groups []string
	// Open multi-line test bodies; their closes are consumed before a
	// group is popped.
	testDepth := 0

	for i, line := range lines {
		if m := reGroupOpen.FindStringSubmatch(line); m != nil {
			groups = append(groups, m[1])
			continue
		}
		if reGroupClose.MatchString(line) {
			if testDepth > 0 {
				testDepth--
			} else if len(groups) > 0 {
				groups = groups[:len(groups)-1]
			}
			continue
		}

		m := reTestDecl.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.Count(line, "{") > strings.Count(line, "}") {
			testDepth++
		}
		if hasAnnotation(lines, i, lookback) {
			continue
		}

		name := m[1]
		if len(groups) > 0 {
			name = strings.Join(groups, ".") + "." + name
		}
		orphans = append(orphans, manifest.OrphanTest{
			FilePath: path,
			TestName: name,
			Line:     i + 1,
			TestCode: captureBody(lines, i, maxBody),
		})
	}
	return orphans
}

// CountLinked returns the number of test declarations that do have an
// annotation within the lookback window.
func CountLinked(content string, opts Options) int {
	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = 5
	}

	lines := strings.Split(content, "\n")
	count := 0
	for i, line := range lines {
		if !reTestDecl.MatchString(line) {
			continue
		}
		if hasAnnotation(lines, i, lookback) {
			count++
		}
	}
	return count
}

// hasAnnotation scans backward from the declaration line. The window
// is inclusive: with lookback 5, an annotation exactly 5 lines above
// still links the test.
func hasAnnotation(lines []string, declIdx, lookback int) bool {
	for i := declIdx; i >= 0 && declIdx-i <= lookback; i-- {
		if reAnnotation.MatchString(lines[i]) {
			return true
		}
	}
	return false
}

// captureBody captures the test body by brace balance from the
// declaration line, bounded to maxLines.
func captureBody(lines []string, declIdx, maxLines int) string {
	depth := 0
	opened := false
	end := declIdx

	for i := declIdx; i < len(lines) && i-declIdx < maxLines; i++ {
		for _, c := range lines[i] {
			switch c {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		end = i
		if opened && depth <= 0 {
			break
		}
	}
	return strings.Join(lines[declIdx:end+1], "\n")
}
