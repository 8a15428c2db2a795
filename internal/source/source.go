// Package source abstracts byte-level file access for the pipeline.
// The core is agnostic to where bytes come from: a local filesystem
// tree or a temporary checkout of a remote mirror.
package source

// WalkOptions bounds a directory walk.
type WalkOptions struct {
	// ExcludePatterns are glob patterns matched against repo-relative
	// forward-slash paths.
	ExcludePatterns []string
	// MaxFiles caps the number of file paths returned; 0 means no cap.
	MaxFiles int
}

// ContentSource gives byte access to files by repo-relative path.
type ContentSource interface {
	// WalkDirectory returns repo-relative forward-slash file paths
	// under root, in deterministic order. A walk failure is fatal to
	// the run that requested it.
	WalkDirectory(root string, opts WalkOptions) ([]string, error)

	// ReadFile returns the bytes of a file.
	ReadFile(path string) ([]byte, error)

	// ReadFileOrNull returns file bytes or nil when the file is
	// missing or unreadable. Item-level best effort.
	ReadFileOrNull(path string) []byte

	// Exists reports whether a path exists.
	Exists(path string) bool

	// CommitHash returns the commit the source is pinned to. The
	// second return is false when no hash is available; that is a
	// normal, typed state, not an error.
	CommitHash() (string, bool)

	// Cleanup releases any resources held by the source (such as a
	// temporary mirror checkout). Safe to call on any outcome.
	Cleanup() error
}
