package aggregate

import (
	"sort"

	"specmap/internal/manifest"
)

// extLanguages maps file extensions to language names for the repo
// context summary.
var extLanguages = map[string]string{
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".cjs":    "JavaScript",
	".go":     "Go",
	".py":     "Python",
	".rs":     "Rust",
	".rb":     "Ruby",
	".java":   "Java",
	".kt":     "Kotlin",
	".cs":     "C#",
	".php":    "PHP",
	".swift":  "Swift",
	".vue":    "Vue",
	".svelte": "Svelte",
}

// BuildContext derives the repository context summary from the
// classified structure and raw extension counts.
func BuildContext(structure *manifest.RepoStructure, extCounts map[string]int) manifest.RepoContext {
	langs := map[string]int{}
	for ext, n := range extCounts {
		if lang, ok := extLanguages[ext]; ok {
			langs[lang] += n
		}
	}

	primary := ""
	best := 0
	// Iterate sorted names so equal counts resolve the same way on
	// every run.
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if langs[name] > best {
			best = langs[name]
			primary = name
		}
	}

	ctx := manifest.RepoContext{
		PrimaryLanguage: primary,
		Frameworks:      structure.Frameworks,
		EntryPoints:     structure.EntryPoints,
		FileCount:       structure.TotalFiles(),
	}
	if len(langs) > 0 {
		ctx.Languages = langs
	}
	return ctx
}
