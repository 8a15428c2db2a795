// Package glob compiles glob patterns to anchored regular expressions.
//
// The pipeline classifies paths from both real filesystems and remote
// mirrors' virtual path lists, so patterns are matched against strings
// rather than handed to the OS: "**" matches across path separators,
// a single "*" matches within one segment, "?" matches one character,
// and literal dots are escaped.
package glob

import (
	"regexp"
	"strings"
)

// Translate compiles a glob pattern into an anchored regexp.
func Translate(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				// "**/" matches zero or more whole segments;
				// a trailing "**" matches the rest of the path.
				if i+2 < len(runes) && runes[i+2] == '/' {
					b.WriteString(`(?:[^/]+/)*`)
					i += 2
				} else {
					b.WriteString(`.*`)
					i++
				}
			} else {
				b.WriteString(`[^/]*`)
			}
		case '?':
			b.WriteString(`[^/]`)
		case '.', '+', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			b.WriteString(`\`)
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}

// MustTranslate is Translate for patterns known at compile time.
func MustTranslate(pattern string) *regexp.Regexp {
	re, err := Translate(pattern)
	if err != nil {
		panic("glob: bad pattern " + pattern + ": " + err.Error())
	}
	return re
}

// Set is a compiled list of patterns matched in order.
type Set struct {
	res []*regexp.Regexp
}

// NewSet compiles the given patterns, skipping ones that fail to
// compile (a bad exclude never aborts a walk).
func NewSet(patterns []string) *Set {
	s := &Set{}
	for _, p := range patterns {
		if re, err := Translate(p); err == nil {
			s.res = append(s.res, re)
		}
	}
	return s
}

// Match reports whether any pattern in the set matches path.
func (s *Set) Match(path string) bool {
	for _, re := range s.res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
