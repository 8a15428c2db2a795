// Package paths provides repo-relative path helpers. Every path the
// pipeline stores or compares uses forward slashes, regardless of
// platform.
package paths

import (
	"path/filepath"
	"strings"
)

// Normalize converts backslashes to forward slashes and strips a
// leading "./".
func Normalize(path string) string {
	p := filepath.ToSlash(path)
	return strings.TrimPrefix(p, "./")
}

// Rel returns the forward-slash path of target relative to root, or
// the normalized target when it is not under root.
func Rel(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Normalize(target)
	}
	return Normalize(rel)
}

// Base returns the last path segment of a forward-slash path.
func Base(path string) string {
	p := Normalize(path)
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Dir returns the directory portion of a forward-slash path, "" for a
// bare file name.
func Dir(path string) string {
	p := Normalize(path)
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i]
	}
	return ""
}

// Ext returns the lowercased extension including the dot, "" when the
// path has none.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// CollapseSlashes collapses duplicate separators in a route or path
// ("/api//users/" -> "/api/users/").
func CollapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// Segments splits a forward-slash path into its segments, dropping
// empty parts.
func Segments(path string) []string {
	var out []string
	for _, s := range strings.Split(Normalize(path), "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
