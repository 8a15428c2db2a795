package classify

import (
	"encoding/json"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"specmap/internal/manifest"
	"specmap/internal/paths"
	"specmap/internal/source"
)

// packageJSON is the subset of package.json the classifier reads.
type packageJSON struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// cargoToml is the subset of Cargo.toml the classifier reads.
type cargoToml struct {
	Package struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"package"`
	Dependencies map[string]interface{} `toml:"dependencies"`
}

// pyprojectToml is the subset of pyproject.toml the classifier reads.
type pyprojectToml struct {
	Project struct {
		Name         string   `toml:"name"`
		Description  string   `toml:"description"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// pnpmWorkspace is the shape of pnpm-workspace.yaml.
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// detectFrameworks scans every discovered package-manifest file, not
// just the root one, to catch monorepos. Dependency-name hits are
// unioned; the first package's name/description/script names are kept
// as representative metadata. Unreadable or unparsable manifests are
// skipped silently.
func detectFrameworks(src source.ContentSource, configFiles []string) ([]string, manifest.PackageMeta) {
	seen := map[string]bool{}
	var meta manifest.PackageMeta
	haveMeta := false

	addDep := func(dep string) {
		if fw, ok := frameworkDeps[dep]; ok {
			seen[fw] = true
		}
	}

	for _, path := range configFiles {
		switch {
		case paths.Base(path) == "package.json":
			data := src.ReadFileOrNull(path)
			if data == nil {
				continue
			}
			var pkg packageJSON
			if err := json.Unmarshal(data, &pkg); err != nil {
				continue
			}
			for dep := range pkg.Dependencies {
				addDep(dep)
			}
			for dep := range pkg.DevDependencies {
				addDep(dep)
			}
			if !haveMeta {
				meta = manifest.PackageMeta{
					Name:        pkg.Name,
					Description: pkg.Description,
					Scripts:     sortedKeys(pkg.Scripts),
				}
				haveMeta = true
			}

		case paths.Base(path) == "Cargo.toml":
			data := src.ReadFileOrNull(path)
			if data == nil {
				continue
			}
			var cargo cargoToml
			if err := toml.Unmarshal(data, &cargo); err != nil {
				continue
			}
			for dep := range cargo.Dependencies {
				addDep(dep)
			}
			if !haveMeta && cargo.Package.Name != "" {
				meta = manifest.PackageMeta{
					Name:        cargo.Package.Name,
					Description: cargo.Package.Description,
				}
				haveMeta = true
			}

		case paths.Base(path) == "pyproject.toml":
			data := src.ReadFileOrNull(path)
			if data == nil {
				continue
			}
			var py pyprojectToml
			if err := toml.Unmarshal(data, &py); err != nil {
				continue
			}
			for _, dep := range py.Project.Dependencies {
				// Requirement specs look like "flask>=2.0"; the name
				// is everything before the first constraint char.
				name := strings.FieldsFunc(dep, func(r rune) bool {
					return r == '>' || r == '<' || r == '=' || r == '~' || r == '!' || r == ' ' || r == '['
				})
				if len(name) > 0 {
					addDep(strings.ToLower(name[0]))
				}
			}
			if !haveMeta && py.Project.Name != "" {
				meta = manifest.PackageMeta{
					Name:        py.Project.Name,
					Description: py.Project.Description,
				}
				haveMeta = true
			}
		}
	}

	frameworks := make([]string, 0, len(seen))
	for fw := range seen {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)
	return frameworks, meta
}

// workspaceGlobs reads pnpm-workspace.yaml when present and returns
// its package globs. Used to confirm monorepo package discovery; a
// missing or malformed file yields nil.
func workspaceGlobs(src source.ContentSource) []string {
	data := src.ReadFileOrNull("pnpm-workspace.yaml")
	if data == nil {
		return nil
	}
	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil
	}
	return ws.Packages
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
