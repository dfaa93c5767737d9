package registry

import (
	"os"
	"path/filepath"

	"github.com/cproject-labs/cproject/internal/manifest"
	"github.com/spf13/afero"
)

// Discover walks all sources and returns every directory that holds an
// archetype manifest. Archetypes in earlier sources shadow same-named
// ones in later sources; shadowed entries are kept and flagged.
func Discover(fsys afero.Fs, sources []Source) []Discovered {
	seen := make(map[string]bool)
	var result []Discovered

	for _, src := range sources {
		for _, d := range walkSource(fsys, src) {
			d.Shadowed = seen[d.Name]
			seen[d.Name] = true
			result = append(result, d)
		}
	}
	return result
}

// walkSource finds archetype directories under a single source. Once a
// manifest is found the walk does not descend further into that directory.
func walkSource(fsys afero.Fs, source Source) []Discovered {
	var result []Discovered
	if ok, _ := afero.DirExists(fsys, source.BasePath); !ok {
		return nil
	}

	_ = afero.Walk(fsys, source.BasePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if !info.IsDir() || path == source.BasePath {
			return nil
		}
		manifestPath, err := manifest.Find(fsys, path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(source.BasePath, path)
		if err != nil {
			return nil
		}
		result = append(result, Discovered{
			Name:         filepath.ToSlash(rel),
			Dir:          path,
			ManifestPath: manifestPath,
			Source:       source,
		})
		return filepath.SkipDir
	})

	return result
}
