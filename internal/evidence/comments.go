package evidence

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
)

var (
	reLineComment = regexp.MustCompile(`^\s*//\s?(.*)$`)
	reExportDecl  = regexp.MustCompile(`^\s*(?:export\b|func\s+[A-Z]|type\s+[A-Z]|public\s)`)

	// Short single-line task annotations, keyword gated.
	reTaskComment = regexp.MustCompile(`(?i)^\s*(?://|#)\s*(todo|fixme|hack|bug|xxx|note)\b[:\s]*(.*)$`)

	// Business-rule comments are modal-verb gated.
	reBusinessRule = regexp.MustCompile(`(?i)\b(must|should|cannot|must not|always|never|only if|required to)\b`)

	// Explicit behavioral-intent back-references.
	reIntentRef = regexp.MustCompile(`@atom\s+([A-Z]{1,4}-\d+)`)
)

// Tooling directives and other noise that the modal-verb gate would
// otherwise pick up.
var ruleNoiseWords = []string{
	"eslint", "prettier", "ts-ignore", "ts-expect-error", "istanbul",
	"noqa", "nolint", "lint", "coverage", "deprecated", "jshint",
}

// ExtractComments runs four independent sub-scans over a file:
// standalone descriptive comment blocks not followed by an export
// (those are counted with the export), task annotations, single-line
// business-rule comments, and behavioral-intent back-references.
func ExtractComments(path, content string) []manifest.EvidenceItem {
	lines := strings.Split(content, "\n")

	var items []manifest.EvidenceItem
	items = append(items, scanStandaloneBlocks(path, lines)...)
	items = append(items, scanTaskAnnotations(path, lines)...)
	items = append(items, scanBusinessRules(path, lines)...)
	items = append(items, scanIntentRefs(path, lines)...)
	return items
}

// scanStandaloneBlocks finds runs of descriptive line comments whose
// following line is not an export declaration; export docs belong to
// source-export extraction and would otherwise be double counted.
func scanStandaloneBlocks(path string, lines []string) []manifest.EvidenceItem {
	var items []manifest.EvidenceItem

	i := 0
	for i < len(lines) {
		m := reLineComment.FindStringSubmatch(lines[i])
		if m == nil || reTaskComment.MatchString(lines[i]) {
			i++
			continue
		}

		start := i
		var parts []string
		for i < len(lines) {
			mm := reLineComment.FindStringSubmatch(lines[i])
			if mm == nil {
				break
			}
			parts = append(parts, strings.TrimSpace(mm[1]))
			i++
		}

		// Skip blocks that document the next declaration.
		if i < len(lines) && reExportDecl.MatchString(lines[i]) {
			continue
		}

		text := strings.TrimSpace(strings.Join(parts, " "))
		if len(text) < 20 || len(parts) < 2 {
			continue
		}

		item := newItem(manifest.EvidenceCodeComment, path, firstWords(text, 8), text, start+1)
		item.Metadata = map[string]string{"kind": "block"}
		items = append(items, item)
	}
	return items
}

func scanTaskAnnotations(path string, lines []string) []manifest.EvidenceItem {
	var items []manifest.EvidenceItem
	for i, line := range lines {
		m := reTaskComment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := newItem(manifest.EvidenceCodeComment, path, strings.ToLower(m[1]), strings.TrimSpace(line), i+1)
		item.Metadata = map[string]string{"kind": "task"}
		items = append(items, item)
	}
	return items
}

func scanBusinessRules(path string, lines []string) []manifest.EvidenceItem {
	var items []manifest.EvidenceItem
	for i, line := range lines {
		m := reLineComment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if !reBusinessRule.MatchString(text) || reTaskComment.MatchString(line) {
			continue
		}
		if containsNoiseWord(text) {
			continue
		}
		item := newItem(manifest.EvidenceCodeComment, path, firstWords(text, 8), text, i+1)
		item.Metadata = map[string]string{"kind": "rule"}
		items = append(items, item)
	}
	return items
}

func scanIntentRefs(path string, lines []string) []manifest.EvidenceItem {
	var items []manifest.EvidenceItem
	for i, line := range lines {
		// A fresh FindAll per line; no stateful matcher is carried
		// across iterations.
		for _, m := range reIntentRef.FindAllStringSubmatch(line, -1) {
			item := newItem(manifest.EvidenceCodeComment, path, m[1], strings.TrimSpace(line), i+1)
			item.Metadata = map[string]string{"kind": "intentRef"}
			items = append(items, item)
		}
	}
	return items
}

func containsNoiseWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range ruleNoiseWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
