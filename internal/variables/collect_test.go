package variables

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/cproject-labs/cproject/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Description: "test",
		Variables: []manifest.Variable{
			{Key: "license", Prompt: "License", Default: strPtr("MIT")},
			{Key: "author", Prompt: "Author"},
			{Key: "name", Prompt: "Project name", Default: strPtr("override-attempt")},
			{Key: "year", Prompt: "Year", Default: strPtr("1999")},
			{Key: "namespace", Prompt: "Namespace", Default: strPtr("")},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 18, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
}

func TestCollect_Defaults(t *testing.T) {
	ctx, err := Collector{Now: fixedClock}.Collect(testManifest(), "demo", Defaults{})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":      "demo",
		"year":      "2026",
		"license":   "MIT",
		"author":    "",
		"namespace": "",
	}, ctx.Map())
	assert.False(t, ctx.IsUnset("author"), "defaults mode never leaves variables unset")
	assert.Equal(t, []string{"name", "year", "license", "author", "namespace"}, ctx.Keys())
}

func TestCollect_YearIsUTC(t *testing.T) {
	// 23:30 on Dec 31 at UTC-5 is already next year in UTC.
	clock := func() time.Time {
		return time.Date(2025, time.December, 31, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	}
	ctx, err := Collector{Now: clock}.Collect(&manifest.Manifest{}, "demo", Defaults{})
	require.NoError(t, err)
	year, _ := ctx.Get("year")
	assert.Equal(t, "2026", year)
}

func TestCollect_DefaultsIdempotent(t *testing.T) {
	m := testManifest()
	a, err := Collector{Now: fixedClock}.Collect(m, "demo", Defaults{})
	require.NoError(t, err)
	b, err := Collector{Now: fixedClock}.Collect(m, "demo", Defaults{})
	require.NoError(t, err)
	assert.Equal(t, a.Map(), b.Map())
	assert.Equal(t, a.Keys(), b.Keys())
}

func TestCollect_ReservedKeysAlwaysPresent(t *testing.T) {
	ctx, err := Collect(&manifest.Manifest{}, "solo", Defaults{})
	require.NoError(t, err)

	name, ok := ctx.Get("name")
	require.True(t, ok)
	assert.Equal(t, "solo", name)

	year, ok := ctx.Get("year")
	require.True(t, ok)
	assert.Len(t, year, 4)
	assert.Equal(t, time.Now().UTC().Format("2006"), year)
}

func TestCollect_Interactive(t *testing.T) {
	// license: accept default; author: typed with padding; namespace: empty
	// input with an empty default.
	input := "\n  Ada Lovelace  \n\n"
	var out bytes.Buffer

	ctx, err := Collector{Now: fixedClock}.Collect(testManifest(), "demo", NewInteractive(strings.NewReader(input), &out))
	require.NoError(t, err)

	assert.Equal(t, "MIT", ctx.Map()["license"])
	assert.Equal(t, "Ada Lovelace", ctx.Map()["author"])
	assert.Equal(t, "", ctx.Map()["namespace"])
	assert.False(t, ctx.IsUnset("namespace"), "an empty declared default is still a value")

	// Reserved keys are not prompted for.
	assert.Equal(t, "demo", ctx.Map()["name"])
	assert.NotContains(t, out.String(), "Project name")
	assert.Contains(t, out.String(), "License (default: MIT): ")
	assert.Contains(t, out.String(), "Author (default: ): ")
}

func TestCollect_InteractiveEmptyWithoutDefaultIsUnset(t *testing.T) {
	m := &manifest.Manifest{Variables: []manifest.Variable{{Key: "author", Prompt: "Author"}}}
	var out bytes.Buffer

	ctx, err := Collect(m, "demo", NewInteractive(strings.NewReader("\n"), &out))
	require.NoError(t, err)

	assert.True(t, ctx.Has("author"))
	assert.True(t, ctx.IsUnset("author"))
	assert.Equal(t, "", ctx.Map()["author"])
}

func TestCollect_InteractiveEOF(t *testing.T) {
	// Input ends after the first answer; the rest behave like empty lines.
	var out bytes.Buffer
	ctx, err := Collect(testManifest(), "demo", NewInteractive(strings.NewReader("Apache-2.0"), &out))
	require.NoError(t, err)

	assert.Equal(t, "Apache-2.0", ctx.Map()["license"])
	assert.True(t, ctx.IsUnset("author"))
}

func TestCollect_InteractiveReadError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	_, err := Collect(testManifest(), "demo", NewInteractive(iotest.ErrReader(boom), &out))
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, apperr.ErrIO)
	assert.Contains(t, err.Error(), `"license"`)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("license: BSD-3-Clause\nauthor: 42\nname: ignored\n"), 0o644))

	src, err := LoadFile(path)
	require.NoError(t, err)

	ctx, err := Collect(testManifest(), "demo", src)
	require.NoError(t, err)
	assert.Equal(t, "BSD-3-Clause", ctx.Map()["license"])
	assert.Equal(t, "42", ctx.Map()["author"])
	assert.Equal(t, "demo", ctx.Map()["name"], "values files cannot override reserved keys")
	assert.Equal(t, "", ctx.Map()["namespace"])
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a\n- mapping\n"), 0o644))
	_, err := LoadFile(path)
	require.ErrorIs(t, err, apperr.ErrIO)
	assert.Contains(t, err.Error(), "parsing values file")

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = LoadFile(missing)
	require.ErrorIs(t, err, apperr.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading values file "+missing)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(Options{UseDefaults: true})
	require.NoError(t, err)
	assert.IsType(t, Defaults{}, src)

	src, err = NewSource(Options{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.IsType(t, &Interactive{}, src)

	_, err = NewSource(Options{UseDefaults: true, ValuesFile: filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err, "values file takes precedence and must exist")
}
