package source

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"specmap/internal/glob"
	"specmap/internal/paths"
)

// Directories never worth descending into, independent of configured
// excludes.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".cache":       true,
	"__pycache__":  true,
}

// LocalSource reads files from a directory on the local filesystem.
type LocalSource struct {
	root string
}

// NewLocalSource creates a content source rooted at dir.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{root: dir}
}

// Root returns the source's root directory.
func (s *LocalSource) Root() string {
	return s.root
}

// WalkDirectory walks the tree under root (relative to the source
// root) and returns repo-relative file paths. filepath.WalkDir visits
// entries in lexical order, so the result is deterministic.
func (s *LocalSource) WalkDirectory(root string, opts WalkOptions) ([]string, error) {
	excludes := glob.NewSet(opts.ExcludePatterns)
	base := filepath.Join(s.root, filepath.FromSlash(root))

	var files []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The walk root itself being unreadable is fatal;
			// a single bad subtree is skipped.
			if path == base {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel := paths.Rel(base, path)
		if excludes.Match(rel) {
			return nil
		}

		files = append(files, rel)
		if opts.MaxFiles > 0 && len(files) >= opts.MaxFiles {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReadFile returns the bytes of a repo-relative file.
func (s *LocalSource) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}

// ReadFileOrNull returns file bytes or nil.
func (s *LocalSource) ReadFileOrNull(path string) []byte {
	b, err := s.ReadFile(path)
	if err != nil {
		return nil
	}
	return b
}

// Exists reports whether the repo-relative path exists.
func (s *LocalSource) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(path)))
	return err == nil
}

// CommitHash resolves HEAD when the root is a git work tree. Absence
// of a hash is a normal state for plain directories.
func (s *LocalSource) CommitHash() (string, bool) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = s.root
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	hash := strings.TrimSpace(string(out))
	if hash == "" {
		return "", false
	}
	return hash, true
}

// Cleanup is a no-op for local sources.
func (s *LocalSource) Cleanup() error {
	return nil
}
