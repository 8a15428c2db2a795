package classify

import (
	"sort"

	"specmap/internal/manifest"
	"specmap/internal/paths"
)

// buildDirTree builds a directory frequency tree from file paths,
// capped at maxDepth segments. Each node's FileCount includes files in
// the whole subtree. Children are sorted by descending file count with
// ties left in discovery order; this ordering is a presentation
// invariant the snapshot diffing relies on.
func buildDirTree(files []string, maxDepth int) *manifest.DirNode {
	root := &manifest.DirNode{Name: "."}
	index := map[*manifest.DirNode]map[string]*manifest.DirNode{root: {}}

	for _, f := range files {
		segs := paths.Segments(f)
		node := root
		node.FileCount++
		// The last segment is the file itself, not a directory.
		for depth := 0; depth < len(segs)-1 && depth < maxDepth; depth++ {
			name := segs[depth]
			child, ok := index[node][name]
			if !ok {
				child = &manifest.DirNode{Name: name}
				index[node][name] = child
				node.Children = append(node.Children, child)
				index[child] = map[string]*manifest.DirNode{}
			}
			child.FileCount++
			node = child
		}
	}

	sortChildren(root)
	return root
}

// sortChildren orders children by count descending; the stable sort
// keeps discovery order for ties.
func sortChildren(node *manifest.DirNode) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].FileCount > node.Children[j].FileCount
	})
	for _, c := range node.Children {
		sortChildren(c)
	}
}
