package classify

import (
	"regexp"

	"specmap/internal/glob"
)

// Category is the primary bucket a path is classified into.
type Category string

const (
	CategoryTest   Category = "test"
	CategoryDoc    Category = "doc"
	CategoryConfig Category = "config"
	CategoryUI     Category = "ui"
	CategorySource Category = "source"
	// CategoryNone marks paths no rule claims. They are counted but
	// kept out of every bucket.
	CategoryNone Category = ""
)

// rule is one ordered classification rule. Category order across the
// table is the fixed priority: test > doc > config > ui > source.
// First match wins, so every path lands in exactly one bucket.
type rule struct {
	category Category
	re       *regexp.Regexp
}

var rules = []rule{
	// Tests first so "src/app.test.ts" never counts as source.
	{CategoryTest, glob.MustTranslate("**/*.test.*")},
	{CategoryTest, glob.MustTranslate("**/*.spec.*")},
	{CategoryTest, glob.MustTranslate("**/__tests__/**")},
	{CategoryTest, glob.MustTranslate("**/*_test.go")},
	{CategoryTest, glob.MustTranslate("**/test_*.py")},
	{CategoryTest, glob.MustTranslate("**/*_test.py")},
	{CategoryTest, glob.MustTranslate("tests/**")},
	{CategoryTest, glob.MustTranslate("test/**")},
	{CategoryTest, glob.MustTranslate("**/*_spec.rb")},

	{CategoryDoc, glob.MustTranslate("**/*.md")},
	{CategoryDoc, glob.MustTranslate("**/*.mdx")},
	{CategoryDoc, glob.MustTranslate("**/*.rst")},
	{CategoryDoc, glob.MustTranslate("**/*.adoc")},
	{CategoryDoc, glob.MustTranslate("docs/**")},

	{CategoryConfig, glob.MustTranslate("**/*.json")},
	{CategoryConfig, glob.MustTranslate("**/*.yaml")},
	{CategoryConfig, glob.MustTranslate("**/*.yml")},
	{CategoryConfig, glob.MustTranslate("**/*.toml")},
	{CategoryConfig, glob.MustTranslate("**/*.ini")},
	{CategoryConfig, glob.MustTranslate("**/*.env")},
	{CategoryConfig, glob.MustTranslate("**/.*rc")},
	{CategoryConfig, glob.MustTranslate("**/*.config.js")},
	{CategoryConfig, glob.MustTranslate("**/*.config.ts")},
	{CategoryConfig, glob.MustTranslate("**/Dockerfile")},
	{CategoryConfig, glob.MustTranslate("Dockerfile")},
	{CategoryConfig, glob.MustTranslate("Makefile")},
	{CategoryConfig, glob.MustTranslate("**/*.lock")},

	{CategoryUI, glob.MustTranslate("**/*.tsx")},
	{CategoryUI, glob.MustTranslate("**/*.jsx")},
	{CategoryUI, glob.MustTranslate("**/*.vue")},
	{CategoryUI, glob.MustTranslate("**/*.svelte")},
	{CategoryUI, glob.MustTranslate("**/components/**")},
	{CategoryUI, glob.MustTranslate("**/*.css")},
	{CategoryUI, glob.MustTranslate("**/*.scss")},
	{CategoryUI, glob.MustTranslate("**/*.html")},

	{CategorySource, glob.MustTranslate("**/*.ts")},
	{CategorySource, glob.MustTranslate("**/*.js")},
	{CategorySource, glob.MustTranslate("**/*.mjs")},
	{CategorySource, glob.MustTranslate("**/*.cjs")},
	{CategorySource, glob.MustTranslate("**/*.go")},
	{CategorySource, glob.MustTranslate("**/*.py")},
	{CategorySource, glob.MustTranslate("**/*.rs")},
	{CategorySource, glob.MustTranslate("**/*.java")},
	{CategorySource, glob.MustTranslate("**/*.kt")},
	{CategorySource, glob.MustTranslate("**/*.rb")},
	{CategorySource, glob.MustTranslate("**/*.php")},
	{CategorySource, glob.MustTranslate("**/*.cs")},
	{CategorySource, glob.MustTranslate("**/*.c")},
	{CategorySource, glob.MustTranslate("**/*.cc")},
	{CategorySource, glob.MustTranslate("**/*.cpp")},
	{CategorySource, glob.MustTranslate("**/*.h")},
}

// Categorize buckets one path by the first matching rule.
func Categorize(path string) Category {
	for _, r := range rules {
		if r.re.MatchString(path) {
			return r.category
		}
	}
	return CategoryNone
}

// frameworkDeps maps dependency names to framework identifiers. Every
// discovered package manifest's dependency names are unioned against
// this table.
var frameworkDeps = map[string]string{
	"react":            "react",
	"react-dom":        "react",
	"next":             "nextjs",
	"vue":              "vue",
	"nuxt":             "nuxt",
	"svelte":           "svelte",
	"@angular/core":    "angular",
	"express":          "express",
	"fastify":          "fastify",
	"koa":              "koa",
	"@nestjs/core":     "nestjs",
	"@nestjs/common":   "nestjs",
	"graphql":          "graphql",
	"apollo-server":    "graphql",
	"@apollo/server":   "graphql",
	"jest":             "jest",
	"vitest":           "vitest",
	"mocha":            "mocha",
	"cypress":          "cypress",
	"@playwright/test": "playwright",
	"django":           "django",
	"flask":            "flask",
	"fastapi":          "fastapi",
	"actix-web":        "actix",
	"rocket":           "rocket",
	"axum":             "axum",
}

// Entry-point detection is a fixed-regex scan over already-classified
// source and UI lists; cheap and order-preserving.
var entryPointRes = []*regexp.Regexp{
	regexp.MustCompile(`^(src/)?(index|main|app|server)\.(ts|tsx|js|jsx|mjs)$`),
	regexp.MustCompile(`^main\.go$`),
	regexp.MustCompile(`^cmd/[^/]+/main\.go$`),
	regexp.MustCompile(`^(src/)?(main|app|__main__|manage)\.py$`),
	regexp.MustCompile(`^src/main\.rs$`),
}

// testPatternRes maps each naming-convention label to its detector.
// Iterated via testPatternOrder for deterministic output.
var testPatternRes = map[string]*regexp.Regexp{
	".spec.":    regexp.MustCompile(`\.spec\.`),
	".test.":    regexp.MustCompile(`\.test\.`),
	"__tests__": regexp.MustCompile(`(^|/)__tests__(/|$)`),
	"_test.go":  regexp.MustCompile(`_test\.go$`),
	"test_*.py": regexp.MustCompile(`(^|/)test_[^/]*\.py$`),
}

var testPatternOrder = []string{".spec.", ".test.", "__tests__", "_test.go", "test_*.py"}
