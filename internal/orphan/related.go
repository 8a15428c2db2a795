package orphan

import (
	"regexp"
	"strings"
)

var reTestSuffix = regexp.MustCompile(`\.(spec|test)(\.[jt]sx?)$`)

// RelatedSourceCandidates derives the likely source files a test file
// exercises, by naming convention only. Candidates are repo-relative
// paths; callers check which actually exist.
func RelatedSourceCandidates(testPath string) []string {
	var out []string

	if m := reTestSuffix.FindStringSubmatch(testPath); m != nil {
		base := reTestSuffix.ReplaceAllString(testPath, "$2")
		out = append(out, base)
		// __tests__/foo.test.ts conventionally tests ../foo.ts.
		if strings.Contains(base, "__tests__/") {
			out = append(out, strings.Replace(base, "__tests__/", "", 1))
		}
	}

	if strings.HasSuffix(testPath, "_test.go") {
		out = append(out, strings.TrimSuffix(testPath, "_test.go")+".go")
	}

	if strings.HasSuffix(testPath, ".py") {
		base := testPath
		if i := strings.LastIndex(base, "/"); i >= 0 {
			dir, name := base[:i+1], base[i+1:]
			if strings.HasPrefix(name, "test_") {
				out = append(out, dir+strings.TrimPrefix(name, "test_"))
			}
		} else if strings.HasPrefix(base, "test_") {
			out = append(out, strings.TrimPrefix(base, "test_"))
		}
	}

	return out
}
