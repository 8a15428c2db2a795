package evidence

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
)

// Export declaration patterns. The capture group is the symbol name;
// the kind label feeds the inventory's secondary grouping.
var exportRes = []struct {
	kind string
	re   *regexp.Regexp
}{
	{"function", regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)},
	{"class", regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)},
	{"const", regexp.MustCompile(`^\s*export\s+const\s+([A-Za-z_$][\w$]*)`)},
	{"interface", regexp.MustCompile(`^\s*export\s+interface\s+([A-Za-z_$][\w$]*)`)},
	{"type", regexp.MustCompile(`^\s*export\s+type\s+([A-Za-z_$][\w$]*)`)},
	{"enum", regexp.MustCompile(`^\s*export\s+(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)`)},
	{"function", regexp.MustCompile(`^func\s+([A-Z]\w*)\s*\(`)},
	{"type", regexp.MustCompile(`^type\s+([A-Z]\w*)\s+(?:struct|interface)\b`)},
}

var mockNameRe = regexp.MustCompile(`(?i)(mock|stub|fake|fixture)`)

// ExtractExports pattern-matches exported declarations, rejecting
// internal, trivially short, and mock/fixture-named symbols. The
// nearest preceding doc block is attached as metadata.
func ExtractExports(path, content string, opts Options) []manifest.EvidenceItem {
	var items []manifest.EvidenceItem
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		for _, pat := range exportRes {
			m := pat.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			if strings.HasPrefix(name, "_") || len(name) < 3 || mockNameRe.MatchString(name) {
				break
			}

			item := newItem(manifest.EvidenceSourceExport, path, name, strings.TrimSpace(line), i+1)
			item.Metadata = map[string]string{"kind": pat.kind}
			if doc := precedingDocBlock(lines, i, opts.DocLookback); doc != "" {
				item.Metadata["doc"] = doc
			}
			items = append(items, item)
			break
		}
	}
	return items
}

// precedingDocBlock collects the comment block immediately above line
// idx. The backward scan is bounded and stops at the first line that
// is not part of a comment: a gap between the doc and the declaration
// means the doc describes something else.
func precedingDocBlock(lines []string, idx, lookback int) string {
	if lookback <= 0 {
		lookback = 10
	}

	var parts []string
	for i := idx - 1; i >= 0 && idx-i <= lookback; i-- {
		t := strings.TrimSpace(lines[i])
		if strings.HasPrefix(t, "//") {
			parts = append(parts, strings.TrimSpace(strings.TrimLeft(t, "/ ")))
		} else if strings.HasPrefix(t, "*/") || strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*") {
			cleaned := strings.TrimSpace(strings.Trim(t, "/*"))
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "*"))
			if cleaned != "" {
				parts = append(parts, cleaned)
			}
		} else {
			// First non-comment line ends the block.
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}

	// Collected bottom-up; restore document order.
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, " ")
}
