package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/spf13/afero"
)

// aliases map convenience names to the default archetype layout.
var aliases = map[string]string{
	"app":        "default/executable",
	"exe":        "default/executable",
	"executable": "default/executable",
	"lib":        "default/library",
	"library":    "default/library",
}

// Sources builds the search roots: each configured location in order,
// followed by the built-in root.
func Sources(locations []string) []Source {
	sources := make([]Source, 0, len(locations)+1)
	for i, loc := range locations {
		sources = append(sources, Source{Name: fmt.Sprintf("config[%d]", i), BasePath: loc})
	}
	return append(sources, Source{Name: "builtin", BasePath: BuiltinRoot})
}

// Candidates returns the relative paths tried for name, highest priority
// first: the configured mapping, the built-in alias, the name itself.
func Candidates(name string, mappings map[string]string) []string {
	var candidates []string
	add := func(c string) {
		for _, existing := range candidates {
			if existing == c {
				return
			}
		}
		candidates = append(candidates, c)
	}
	if mapped := lookupMapping(mappings, name); mapped != "" {
		add(mapped)
	}
	if alias, ok := aliases[name]; ok {
		add(alias)
	}
	add(name)
	return candidates
}

// lookupMapping finds the configured path for name. Config keys arrive
// lowercased, so the exact key is tried first and then the lowercase one.
func lookupMapping(mappings map[string]string, name string) string {
	if mapped, ok := mappings[name]; ok {
		return mapped
	}
	return mappings[strings.ToLower(name)]
}

// Resolve searches for an archetype across sources in priority order.
// All candidates are tried under the first source before moving to the
// next; the first path that exists is returned.
func Resolve(fsys afero.Fs, name string, sources []Source, mappings map[string]string) (*Resolved, error) {
	if name == "" {
		return nil, apperr.New(apperr.ErrNotFound, "archetype name is empty")
	}
	candidates := Candidates(name, mappings)

	for _, src := range sources {
		for _, rel := range candidates {
			p := filepath.Join(src.BasePath, rel)
			exists, err := afero.Exists(fsys, p)
			if err != nil || !exists {
				continue
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, apperr.IO("resolving", p, err)
			}
			return &Resolved{
				Name:      name,
				Candidate: rel,
				Dir:       abs,
				Source:    src,
			}, nil
		}
	}

	return nil, apperr.New(apperr.ErrNotFound, "could not find template directory for archetype %q", name)
}
