package registry

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// IndexFile is the discovery cache file name inside the user config directory.
const IndexFile = "archetype-index.json"

// CachedIndex holds a cached discovery result along with source
// modification times used for invalidation.
type CachedIndex struct {
	Archetypes []Discovered     `json:"archetypes"`
	SourceMods map[string]int64 `json:"source_mods"` // absolute source path -> mtime unix nanos
	CachedAt   time.Time        `json:"cached_at"`
}

// DiscoverCached returns Discover's result, reusing the cache at cachePath
// while every source is unchanged and every cached manifest still exists.
// The cache is rewritten on a miss; failing to write it is not an error.
func DiscoverCached(fsys afero.Fs, sources []Source, cachePath string) []Discovered {
	cached, err := loadCache(fsys, cachePath)
	if err == nil && isCacheValid(fsys, cached, sources) {
		return cached.Archetypes
	}

	found := Discover(fsys, sources)
	writeCache(fsys, cachePath, found, sources)
	return found
}

// loadCache reads and parses the cache file.
func loadCache(fsys afero.Fs, path string) (*CachedIndex, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var idx CachedIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// isCacheValid checks whether the cached source mtimes still match and the
// cached manifests are still present. Any change invalidates.
func isCacheValid(fsys afero.Fs, cached *CachedIndex, sources []Source) bool {
	if cached == nil || cached.SourceMods == nil {
		return false
	}
	if len(cached.SourceMods) != len(sources) {
		return false
	}
	for _, src := range sources {
		cachedMtime, ok := cached.SourceMods[sourceKey(src)]
		if !ok || latestMtime(fsys, src.BasePath) != cachedMtime {
			return false
		}
	}
	for _, d := range cached.Archetypes {
		if ok, _ := afero.Exists(fsys, d.ManifestPath); !ok {
			return false
		}
	}
	return true
}

// latestMtime returns the latest modification time across the source
// directory and the two directory levels below it. This catches archetypes
// added at the usual depths (name, or group/name) without a full walk.
func latestMtime(fsys afero.Fs, basePath string) int64 {
	info, err := fsys.Stat(basePath)
	if err != nil {
		return 0
	}
	latest := info.ModTime().UnixNano()

	var scan func(dir string, depth int)
	scan = func(dir string, depth int) {
		if depth == 0 {
			return
		}
		entries, err := afero.ReadDir(fsys, dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if t := entry.ModTime().UnixNano(); t > latest {
				latest = t
			}
			scan(filepath.Join(dir, entry.Name()), depth-1)
		}
	}
	scan(basePath, 2)
	return latest
}

// sourceKey identifies a source independent of the working directory.
func sourceKey(src Source) string {
	if abs, err := filepath.Abs(src.BasePath); err == nil {
		return abs
	}
	return src.BasePath
}

// writeCache serializes the discovered archetypes and source mtimes.
func writeCache(fsys afero.Fs, path string, found []Discovered, sources []Source) {
	if path == "" {
		return
	}
	mods := make(map[string]int64, len(sources))
	for _, src := range sources {
		mods[sourceKey(src)] = latestMtime(fsys, src.BasePath)
	}

	data, err := json.MarshalIndent(CachedIndex{
		Archetypes: found,
		SourceMods: mods,
		CachedAt:   time.Now(),
	}, "", "  ")
	if err != nil {
		return
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	_ = afero.WriteFile(fsys, path, data, 0644)
}
