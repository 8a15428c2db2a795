package classify

import (
	"testing"

	"specmap/internal/manifest"
)

func TestBuildDirTree(t *testing.T) {
	files := []string{
		"docs/intro.md",
		"src/a.ts",
		"src/b.ts",
		"src/deep/one/two/three/x.ts",
		"README.md",
	}

	root := buildDirTree(files, 3)
	if root.FileCount != 5 {
		t.Fatalf("root count = %d, want 5", root.FileCount)
	}

	// src has 3 files and sorts before docs.
	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}
	if root.Children[0].Name != "src" || root.Children[0].FileCount != 3 {
		t.Errorf("first child = %s/%d, want src/3", root.Children[0].Name, root.Children[0].FileCount)
	}
	if root.Children[1].Name != "docs" {
		t.Errorf("second child = %s, want docs", root.Children[1].Name)
	}

	// Depth cap: src/deep/one exists, one's children do not.
	deep := findChild(root.Children[0], "deep")
	if deep == nil {
		t.Fatal("src/deep missing")
	}
	one := findChild(deep, "one")
	if one == nil {
		t.Fatal("src/deep/one missing")
	}
	if len(one.Children) != 0 {
		t.Errorf("depth cap not applied, one has %d children", len(one.Children))
	}
}

// Equal counts keep discovery order.
func TestBuildDirTreeTieOrder(t *testing.T) {
	files := []string{
		"zeta/a.ts",
		"alpha/b.ts",
		"mid/c.ts",
	}
	root := buildDirTree(files, 2)
	want := []string{"zeta", "alpha", "mid"}
	if len(root.Children) != len(want) {
		t.Fatalf("children = %d, want %d", len(root.Children), len(want))
	}
	for i, name := range want {
		if root.Children[i].Name != name {
			t.Errorf("child[%d] = %s, want %s", i, root.Children[i].Name, name)
		}
	}
}

func findChild(n *manifest.DirNode, name string) *manifest.DirNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
