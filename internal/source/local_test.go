package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestWalkDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "a")
	writeFile(t, root, "src/b.ts", "b")
	writeFile(t, root, "node_modules/pkg/index.js", "x")
	writeFile(t, root, "dist/bundle.js", "x")
	writeFile(t, root, "README.md", "r")

	src := NewLocalSource(root)
	files, err := src.WalkDirectory(".", WalkOptions{})
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}

	want := []string{"README.md", "src/a.ts", "src/b.ts"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestWalkDirectoryDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b/x.ts", "x")
	writeFile(t, root, "a/y.ts", "y")
	writeFile(t, root, "c/z.ts", "z")

	src := NewLocalSource(root)
	first, err := src.WalkDirectory(".", WalkOptions{})
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := src.WalkDirectory(".", WalkOptions{})
		if err != nil {
			t.Fatalf("WalkDirectory: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("length changed between walks")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("order changed: %v vs %v", first, again)
			}
		}
	}
}

func TestWalkDirectoryExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "a")
	writeFile(t, root, "src/gen/b.ts", "b")

	src := NewLocalSource(root)
	files, err := src.WalkDirectory(".", WalkOptions{
		ExcludePatterns: []string{"src/gen/**"},
	})
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}
	if len(files) != 1 || files[0] != "src/a.ts" {
		t.Errorf("files = %v", files)
	}
}

func TestWalkDirectoryMaxFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.ts", "b.ts", "c.ts", "d.ts"} {
		writeFile(t, root, name, "x")
	}

	src := NewLocalSource(root)
	files, err := src.WalkDirectory(".", WalkOptions{MaxFiles: 2})
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("files = %v, want 2 entries", files)
	}
}

func TestWalkDirectoryMissingRoot(t *testing.T) {
	src := NewLocalSource(filepath.Join(t.TempDir(), "gone"))
	if _, err := src.WalkDirectory(".", WalkOptions{}); err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestReadHelpers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "hello")

	src := NewLocalSource(root)
	if got := src.ReadFileOrNull("a.txt"); string(got) != "hello" {
		t.Errorf("ReadFileOrNull = %q", got)
	}
	if got := src.ReadFileOrNull("missing.txt"); got != nil {
		t.Errorf("expected nil for missing file, got %q", got)
	}
	if !src.Exists("a.txt") || src.Exists("missing.txt") {
		t.Error("Exists misreported")
	}
}

func TestCommitHashPlainDirectory(t *testing.T) {
	src := NewLocalSource(t.TempDir())
	if hash, ok := src.CommitHash(); ok {
		t.Errorf("unexpected commit hash %q in a plain directory", hash)
	}
}
