package registry

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArchetype(t *testing.T, fsys afero.Fs, dir, description string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "archetype.toml"), []byte("description = \""+description+"\"\n"), 0644))
}

func TestDiscoverCached_WritesCache(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedArchetype(t, fsys, "/roots/a/default/executable", "exe")
	sources := []Source{{Name: "config[0]", BasePath: "/roots/a"}}

	found := DiscoverCached(fsys, sources, "/cache/index.json")
	require.Len(t, found, 1)
	assert.Equal(t, "default/executable", found[0].Name)

	data, err := afero.ReadFile(fsys, "/cache/index.json")
	require.NoError(t, err)
	var idx CachedIndex
	require.NoError(t, json.Unmarshal(data, &idx))
	assert.Len(t, idx.Archetypes, 1)
	assert.Contains(t, idx.SourceMods, "/roots/a")
}

func TestDiscoverCached_UsesCacheWhenUnchanged(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedArchetype(t, fsys, "/roots/a/one", "one")
	sources := []Source{{Name: "config[0]", BasePath: "/roots/a"}}

	first := DiscoverCached(fsys, sources, "/cache/index.json")

	// Tamper with the cached entry; a cache hit returns it unchanged.
	idx, err := loadCache(fsys, "/cache/index.json")
	require.NoError(t, err)
	idx.Archetypes[0].Name = "from-cache"
	data, err := json.Marshal(idx)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, "/cache/index.json", data, 0644))

	second := DiscoverCached(fsys, sources, "/cache/index.json")
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "from-cache", second[0].Name)
}

func TestDiscoverCached_InvalidatesOnChange(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedArchetype(t, fsys, "/roots/a/one", "one")
	sources := []Source{{Name: "config[0]", BasePath: "/roots/a"}}
	DiscoverCached(fsys, sources, "/cache/index.json")

	seedArchetype(t, fsys, "/roots/a/two", "two")
	later := time.Now().Add(time.Hour)
	require.NoError(t, fsys.Chtimes("/roots/a/two", later, later))

	found := DiscoverCached(fsys, sources, "/cache/index.json")
	assert.Len(t, found, 2)
}

func TestDiscoverCached_InvalidatesOnRemovedManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedArchetype(t, fsys, "/roots/a/one", "one")
	sources := []Source{{Name: "config[0]", BasePath: "/roots/a"}}
	DiscoverCached(fsys, sources, "/cache/index.json")

	require.NoError(t, fsys.Remove("/roots/a/one/archetype.toml"))

	assert.Empty(t, DiscoverCached(fsys, sources, "/cache/index.json"))
}

func TestDiscoverCached_SourceListChange(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedArchetype(t, fsys, "/roots/a/one", "one")
	seedArchetype(t, fsys, "/roots/b/two", "two")

	DiscoverCached(fsys, []Source{{Name: "config[0]", BasePath: "/roots/a"}}, "/cache/index.json")
	found := DiscoverCached(fsys, []Source{
		{Name: "config[0]", BasePath: "/roots/a"},
		{Name: "config[1]", BasePath: "/roots/b"},
	}, "/cache/index.json")
	assert.Len(t, found, 2)
}

func TestDiscoverCached_NoCachePath(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedArchetype(t, fsys, "/roots/a/one", "one")
	found := DiscoverCached(fsys, []Source{{Name: "builtin", BasePath: "/roots/a"}}, "")
	assert.Len(t, found, 1)
}
