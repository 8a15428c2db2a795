// Package evidence mines typed evidence items from file contents
// using static line/pattern heuristics. Extractors are pure: file path
// and content in, items out, empty slice when nothing matches. No
// extractor ever fails a file; "not found" is a normal result.
package evidence

import (
	"specmap/internal/classify"
	"specmap/internal/manifest"
)

// Extractor options shared across extractors, resolved from config at
// pipeline entry.
type Options struct {
	DocLookback     int // lines scanned backward for a doc block
	MaxSectionChars int // documentation section truncation cap
	MinSectionChars int // floor below which a section is dropped
}

// ExtractFromFile dispatches the per-role extractors and merges their
// output. The caller owns the returned slice; no shared accumulator
// crosses files.
func ExtractFromFile(path, content string, frameworks []string, role classify.Category, opts Options) []manifest.EvidenceItem {
	var items []manifest.EvidenceItem

	switch role {
	case classify.CategorySource:
		items = append(items, ExtractExports(path, content, opts)...)
		items = append(items, ExtractEndpoints(path, content, frameworks)...)
		items = append(items, ExtractComments(path, content)...)
	case classify.CategoryUI:
		items = append(items, ExtractComponents(path, content, frameworks)...)
		items = append(items, ExtractEndpoints(path, content, frameworks)...)
		items = append(items, ExtractComments(path, content)...)
	case classify.CategoryDoc:
		items = append(items, ExtractDocSections(path, content, opts)...)
	}
	// Test files are the orphan scanner's territory; config files
	// carry no extractable behavior evidence.

	return items
}

func newItem(t manifest.EvidenceType, path, name, snippet string, line int) manifest.EvidenceItem {
	return manifest.EvidenceItem{
		Type:           t,
		FilePath:       path,
		Name:           name,
		Snippet:        snippet,
		Line:           line,
		BaseConfidence: manifest.BaseConfidence(t),
	}
}
