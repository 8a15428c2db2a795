package evidence

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
)

// uiFrameworks gates component extraction; without one of these in
// the detected set the file is not scanned.
var uiFrameworks = map[string]bool{
	"react":  true,
	"nextjs": true,
	"vue":    true,
	"nuxt":   true,
	"svelte": true,
}

// Component declaration patterns. "direct" matches need the markup
// heuristic to pass; wrapper and default-export forms are confident
// on their own.
var (
	reComponentFunc   = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?function\s+([A-Z]\w*)\s*\(`)
	reComponentConst  = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Z]\w*)(?::\s*[\w.<>\[\]]+)?\s*=\s*(?:async\s*)?\(`)
	reDefaultRebind   = regexp.MustCompile(`^\s*export\s+default\s+([A-Z]\w*)\s*;?\s*$`)
	reWrapperCall     = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Z]\w*)\s*=\s*(?:React\.)?(memo|forwardRef|observer|styled|connect|withRouter)\s*[(.]`)
	reMarkup          = regexp.MustCompile(`<[A-Za-z][\w.]*(\s|>|/)`)
	reFormIdiom       = regexp.MustCompile(`(?i)(<form|onSubmit|useForm|handleSubmit|<input|<select|<textarea)`)
	reNavigationIdiom = regexp.MustCompile(`(<Link|<NavLink|useNavigate|useRouter|router\.push|navigate\()`)
)

func hasUIFramework(frameworks []string) bool {
	for _, fw := range frameworks {
		if uiFrameworks[fw] {
			return true
		}
	}
	return false
}

// ExtractComponents detects UI component declarations. Matches are
// deduplicated by symbol name; a file-level markup heuristic gates the
// low-confidence direct-declaration forms.
func ExtractComponents(path, content string, frameworks []string) []manifest.EvidenceItem {
	if !hasUIFramework(frameworks) {
		return nil
	}

	looksLikeMarkup := reMarkup.MatchString(content)
	hasForm := reFormIdiom.MatchString(content)
	hasNavigation := reNavigationIdiom.MatchString(content)

	var items []manifest.EvidenceItem
	seen := map[string]bool{}

	add := func(name, line string, lineNo int, kind string) {
		if seen[name] || strings.HasPrefix(name, "_") || len(name) < 3 {
			return
		}
		seen[name] = true

		item := newItem(manifest.EvidenceUIComponent, path, name, strings.TrimSpace(line), lineNo)
		item.Metadata = map[string]string{"declKind": kind}
		if fw := primaryUIFramework(frameworks); fw != "" {
			item.Metadata["framework"] = fw
		}
		if hasForm {
			item.Metadata["hasForm"] = "true"
		}
		if hasNavigation {
			item.Metadata["hasNavigation"] = "true"
		}
		items = append(items, item)
	}

	for i, line := range strings.Split(content, "\n") {
		if m := reWrapperCall.FindStringSubmatch(line); m != nil {
			add(m[1], line, i+1, "wrapper")
			continue
		}
		if m := reDefaultRebind.FindStringSubmatch(line); m != nil {
			add(m[1], line, i+1, "defaultExport")
			continue
		}
		if !looksLikeMarkup {
			continue
		}
		if m := reComponentFunc.FindStringSubmatch(line); m != nil {
			add(m[1], line, i+1, "function")
			continue
		}
		if m := reComponentConst.FindStringSubmatch(line); m != nil {
			add(m[1], line, i+1, "const")
		}
	}
	return items
}

// primaryUIFramework returns the first detected UI framework in the
// detection set's order.
func primaryUIFramework(frameworks []string) string {
	for _, fw := range frameworks {
		if uiFrameworks[fw] {
			return fw
		}
	}
	return ""
}
