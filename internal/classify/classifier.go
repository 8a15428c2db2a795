// Package classify walks a repository tree and buckets every path by
// role, detects frameworks from package manifests, and discovers
// coverage artifacts. It is the first pipeline phase; everything
// downstream consumes its output.
package classify

import (
	"specmap/internal/coverage"
	"specmap/internal/errors"
	"specmap/internal/glob"
	"specmap/internal/logging"
	"specmap/internal/manifest"
	"specmap/internal/paths"
	"specmap/internal/source"
)

// Options bounds a classification run. Zero values mean the caller
// forgot to resolve config defaults; Classify applies none of its own.
type Options struct {
	ExcludePatterns []string
	MaxFiles        int
	DirTreeDepth    int
}

// Result is the output of structural classification.
type Result struct {
	Structure manifest.RepoStructure
	Coverage  manifest.CoverageData
	// ExtCounts maps file extensions to occurrence counts across all
	// walked files, classified or not. Phase 4 derives the language
	// summary from it.
	ExtCounts map[string]int
}

// Classify walks root through src and buckets every file. A walk
// failure is fatal; any single unreadable manifest or artifact is
// skipped.
func Classify(src source.ContentSource, root string, opts Options, logger *logging.Logger) (*Result, error) {
	files, err := src.WalkDirectory(root, source.WalkOptions{
		ExcludePatterns: opts.ExcludePatterns,
		MaxFiles:        opts.MaxFiles,
	})
	if err != nil {
		return nil, errors.Wrap(errors.WalkFailed, "directory walk failed", err)
	}

	res := &Result{ExtCounts: map[string]int{}}
	st := &res.Structure

	for _, f := range files {
		if ext := paths.Ext(f); ext != "" {
			res.ExtCounts[ext]++
		}
		switch Categorize(f) {
		case CategoryTest:
			st.TestFiles = append(st.TestFiles, f)
		case CategoryDoc:
			st.DocFiles = append(st.DocFiles, f)
		case CategoryConfig:
			st.ConfigFiles = append(st.ConfigFiles, f)
		case CategoryUI:
			st.UIFiles = append(st.UIFiles, f)
		case CategorySource:
			st.SourceFiles = append(st.SourceFiles, f)
		}
	}

	st.Frameworks, st.Package = detectFrameworks(src, packageManifests(src, st.ConfigFiles))
	st.DirTree = buildDirTree(files, opts.DirTreeDepth)
	st.EntryPoints = findEntryPoints(st.SourceFiles, st.UIFiles)
	st.TestPatterns = findTestPatterns(st.TestFiles)

	res.Coverage = discoverCoverage(src, logger)

	logger.Debug("Classification complete", map[string]interface{}{
		"files":      len(files),
		"tests":      len(st.TestFiles),
		"source":     len(st.SourceFiles),
		"frameworks": st.Frameworks,
	})

	return res, nil
}

// packageManifests filters the config bucket down to the package
// manifests worth parsing. When a pnpm workspace file is present its
// globs gate which nested package.json files count as workspace
// packages; the root manifest always counts.
func packageManifests(src source.ContentSource, configFiles []string) []string {
	ws := workspaceGlobs(src)
	wsSet := glob.NewSet(expandWorkspaceGlobs(ws))
	hasWorkspace := len(ws) > 0

	var out []string
	for _, f := range configFiles {
		base := paths.Base(f)
		if base != "package.json" && base != "Cargo.toml" && base != "pyproject.toml" {
			continue
		}
		if base == "package.json" && hasWorkspace && paths.Dir(f) != "" && !wsSet.Match(paths.Dir(f)) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// expandWorkspaceGlobs turns pnpm package globs ("packages/*") into
// directory-matching form.
func expandWorkspaceGlobs(globs []string) []string {
	var out []string
	for _, g := range globs {
		out = append(out, g, g+"/**")
	}
	return out
}

// findEntryPoints runs the fixed entry-point regexes over the source
// and UI lists, preserving discovery order.
func findEntryPoints(sourceFiles, uiFiles []string) []string {
	var out []string
	for _, list := range [][]string{sourceFiles, uiFiles} {
		for _, f := range list {
			for _, re := range entryPointRes {
				if re.MatchString(f) {
					out = append(out, f)
					break
				}
			}
		}
	}
	return out
}

// findTestPatterns reports which test naming conventions the repo
// uses, in fixed label order.
func findTestPatterns(testFiles []string) []string {
	var out []string
	for _, label := range testPatternOrder {
		re := testPatternRes[label]
		for _, f := range testFiles {
			if re.MatchString(f) {
				out = append(out, label)
				break
			}
		}
	}
	return out
}

// discoverCoverage tries the fixed ordered list of conventional
// coverage artifact paths and stops at the first parse success.
// Failures are silent; coverage is optional input.
func discoverCoverage(src source.ContentSource, logger *logging.Logger) manifest.CoverageData {
	for _, artifact := range coverage.ArtifactPaths {
		data := src.ReadFileOrNull(artifact.Path)
		if data == nil {
			continue
		}
		cov, err := artifact.Parse(data)
		if err != nil || len(cov) == 0 {
			continue
		}
		logger.Debug("Coverage artifact found", map[string]interface{}{
			"path":  artifact.Path,
			"files": len(cov),
		})
		return cov
	}
	return nil
}
