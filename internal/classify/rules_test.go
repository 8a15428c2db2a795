package classify

import (
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		// Test rules win over every later category.
		{"src/app.test.ts", CategoryTest},
		{"src/app.spec.tsx", CategoryTest},
		{"src/__tests__/helpers.ts", CategoryTest},
		{"internal/store/store_test.go", CategoryTest},
		{"tests/fixtures.py", CategoryTest},
		{"pkg/test_parser.py", CategoryTest},

		{"README.md", CategoryDoc},
		{"docs/guide.mdx", CategoryDoc},
		{"docs/index.html", CategoryDoc},

		{"package.json", CategoryConfig},
		{"config/settings.yaml", CategoryConfig},
		{"Cargo.toml", CategoryConfig},
		{"Dockerfile", CategoryConfig},
		{"services/api/Dockerfile", CategoryConfig},
		{"yarn.lock", CategoryConfig},
		{".eslintrc", CategoryConfig},
		{"vite.config.ts", CategoryConfig},

		{"src/App.tsx", CategoryUI},
		{"src/components/util.ts", CategoryUI},
		{"pages/Home.vue", CategoryUI},
		{"styles/main.css", CategoryUI},

		{"src/index.ts", CategorySource},
		{"cmd/server/main.go", CategorySource},
		{"lib/parser.rs", CategorySource},
		{"app/models.py", CategorySource},

		{"LICENSE", CategoryNone},
		{"assets/logo.png", CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Categorize(tt.path); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// Every path must land in exactly one bucket, so the category of a
// path that matches rules from several categories is decided by
// priority, not by file extension.
func TestCategorizePriority(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		// .tsx is a UI extension, but the test rule claims it first.
		{"components/Button.test.tsx", CategoryTest},
		// .json is config, but under tests/ it is a test asset.
		{"tests/fixtures/data.json", CategoryTest},
		// .md under docs/ hits the extension rule either way.
		{"docs/README.md", CategoryDoc},
		// config.ts beats the plain .ts source rule.
		{"jest.config.ts", CategoryConfig},
		// components/ dir beats the .ts source rule.
		{"src/components/index.ts", CategoryUI},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Categorize(tt.path); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFindTestPatterns(t *testing.T) {
	files := []string{
		"src/app.test.ts",
		"src/util.spec.ts",
		"internal/db/db_test.go",
	}
	got := findTestPatterns(files)
	want := []string{".spec.", ".test.", "_test.go"}
	if len(got) != len(want) {
		t.Fatalf("findTestPatterns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pattern[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindEntryPoints(t *testing.T) {
	source := []string{"src/util.ts", "src/index.ts", "cmd/api/main.go"}
	ui := []string{"src/App.tsx"}
	got := findEntryPoints(source, ui)
	want := []string{"src/index.ts", "cmd/api/main.go"}
	if len(got) != len(want) {
		t.Fatalf("findEntryPoints = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entryPoint[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
