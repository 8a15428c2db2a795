package glob

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.spec.ts", "a/b/c.spec.ts", true},
		{"**/*.spec.ts", "c.spec.ts", true},
		{"*.ts", "b.ts", true},
		{"*.ts", "a/b.ts", false},
		{"*.ts", "b.tsx", false},
		{"src/**", "src/a/b/c.go", true},
		{"src/**", "lib/a.go", false},
		{"node_modules/**", "node_modules/react/index.js", true},
		{"**/__tests__/**", "src/__tests__/a.js", true},
		{"**/*.test.js", "deep/path/x.test.js", true},
		{"README.md", "README.md", true},
		{"README.md", "READMEXmd", false}, // dot is literal
		{"a?c", "abc", true},
		{"a?c", "a/c", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"__"+tt.path, func(t *testing.T) {
			re, err := Translate(tt.pattern)
			if err != nil {
				t.Fatalf("Translate(%q) error = %v", tt.pattern, err)
			}
			if got := re.MatchString(tt.path); got != tt.want {
				t.Errorf("pattern %q vs %q = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := NewSet([]string{"node_modules/**", "dist/**", "[bad"})

	if !s.Match("node_modules/a/b.js") {
		t.Error("expected node_modules path to match")
	}
	if s.Match("src/a.js") {
		t.Error("src path should not match")
	}
}
