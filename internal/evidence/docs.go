package evidence

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
)

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	reMDLink    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reMDImage   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reHTMLTag   = regexp.MustCompile(`<[^>]+>`)
	reBadgeLine = regexp.MustCompile(`^\s*!?\[.*\]\(.*\)\s*$`)
)

// Headings whose sections carry no behavior evidence.
var boilerplateHeadings = map[string]bool{
	"table of contents": true,
	"toc":               true,
	"license":           true,
	"licence":           true,
	"contributing":      true,
	"contributors":      true,
	"acknowledgements":  true,
	"acknowledgments":   true,
	"changelog":         true,
	"badges":            true,
	"credits":           true,
}

// ExtractDocSections splits a document into heading-delimited
// sections, drops boilerplate headings by name and near-empty sections
// (under the configured character floor after stripping link syntax),
// and truncates each kept section to the configured cap.
func ExtractDocSections(path, content string, opts Options) []manifest.EvidenceItem {
	minChars := opts.MinSectionChars
	if minChars <= 0 {
		minChars = 40
	}
	maxChars := opts.MaxSectionChars
	if maxChars <= 0 {
		maxChars = 500
	}

	var items []manifest.EvidenceItem

	heading := ""
	headingLine := 1
	var body []string

	flush := func() {
		if heading == "" && len(body) == 0 {
			return
		}
		if boilerplateHeadings[strings.ToLower(heading)] {
			return
		}
		text := stripLinkSyntax(strings.Join(body, "\n"))
		text = strings.TrimSpace(text)
		if len(text) < minChars {
			return
		}
		if len(text) > maxChars {
			text = text[:maxChars]
		}

		name := heading
		if name == "" {
			name = "(preamble)"
		}
		item := newItem(manifest.EvidenceDocumentation, path, name, text, headingLine)
		items = append(items, item)
	}

	for i, line := range strings.Split(content, "\n") {
		if m := reHeading.FindStringSubmatch(line); m != nil {
			flush()
			heading = m[2]
			headingLine = i + 1
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	return items
}

// stripLinkSyntax removes markdown images, reduces links to their
// text, and drops HTML tags and badge-only lines so the character
// floor measures real prose.
func stripLinkSyntax(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if reBadgeLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	s = strings.Join(kept, "\n")
	s = reMDImage.ReplaceAllString(s, "")
	s = reMDLink.ReplaceAllString(s, "$1")
	s = reHTMLTag.ReplaceAllString(s, "")
	return s
}
