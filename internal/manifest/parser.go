package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// Format identifies the syntax a manifest is written in.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatOf infers the manifest format from a file name.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Find returns the path of the manifest inside dir.
// Fallback order: archetype.toml > archetype.yaml.
func Find(fsys afero.Fs, dir string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		info, err := fsys.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", apperr.New(apperr.ErrManifestMissing, "no %s found in %s", FileName, dir)
}

// Load finds and parses the manifest inside dir.
func Load(fsys afero.Fs, dir string) (*Manifest, error) {
	path, err := Find(fsys, dir)
	if err != nil {
		return nil, err
	}
	return ParseFile(fsys, path)
}

// ParseFile reads and parses the manifest at path.
func ParseFile(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.ErrManifestMissing, err, "reading manifest %s", path)
		}
		return nil, apperr.IO("reading manifest", path, err)
	}
	return Parse(data, FormatOf(path), path)
}

// Parse decodes manifest bytes, validates them against the schema, and
// returns the typed manifest. path is used for error messages only.
func Parse(data []byte, format Format, path string) (*Manifest, error) {
	doc, err := decodeGeneric(data, format)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrManifestInvalid, err, "parsing manifest %s", path)
	}

	result, err := Validate(doc)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrManifestInvalid, err, "validating manifest %s", path)
	}
	if !result.Valid {
		return nil, apperr.New(apperr.ErrManifestInvalid, "manifest %s is invalid: %s", path, result.Summary())
	}

	var raw rawManifest
	var order []string
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
		order = yamlVariableOrder(data)
	default:
		err = toml.Unmarshal(data, &raw)
		order = tomlVariableOrder(data)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrManifestInvalid, err, "parsing manifest %s", path)
	}

	if raw.Requires != "" {
		if _, err := semver.NewConstraint(raw.Requires); err != nil {
			return nil, apperr.Wrap(apperr.ErrManifestInvalid, err, "manifest %s: bad requires constraint %q", path, raw.Requires)
		}
	}

	m := &Manifest{
		Description: raw.Description,
		Requires:    raw.Requires,
		Path:        path,
	}
	for _, key := range completeOrder(order, raw.Variables) {
		rv := raw.Variables[key]
		m.Variables = append(m.Variables, Variable{Key: key, Prompt: rv.Prompt, Default: rv.Default})
	}
	m.Hooks = append(m.Hooks, raw.Hooks.PostCreate.Commands...)
	m.Hooks = append(m.Hooks, raw.Hooks.PostCreateAlias.Commands...)
	return m, nil
}

// CheckRequires verifies that version satisfies the manifest's requires
// constraint. Development builds and unparseable versions skip the check.
func (m *Manifest) CheckRequires(version string) error {
	if m.Requires == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil
	}
	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return apperr.Wrap(apperr.ErrManifestInvalid, err, "bad requires constraint %q", m.Requires)
	}
	if !c.Check(v) {
		return apperr.New(apperr.ErrManifestInvalid, "archetype requires cproject %s, running %s", m.Requires, version)
	}
	return nil
}

// decodeGeneric unmarshals manifest bytes into JSON-compatible values.
func decodeGeneric(data []byte, format Format) (interface{}, error) {
	var doc interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshaling YAML: %w", err)
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
	default:
		var m map[string]interface{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("unmarshaling TOML: %w", err)
		}
		doc = m
	}
	return normalize(doc), nil
}

// tomlVariableOrder returns variable keys in the order their tables or
// key/value pairs appear in the document.
func tomlVariableOrder(data []byte) []string {
	var order []string
	add := func(k string) {
		for _, o := range order {
			if o == k {
				return
			}
		}
		order = append(order, k)
	}

	p := unstable.Parser{}
	p.Reset(data)
	var table []string
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(e)
			if len(table) >= 2 && table[0] == "variables" {
				add(table[1])
			}
		case unstable.KeyValue:
			full := append(append([]string{}, table...), keyParts(e)...)
			if len(full) >= 2 && full[0] == "variables" {
				add(full[1])
			}
		}
	}
	return order
}

func keyParts(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// yamlVariableOrder returns the keys of the top-level variables mapping in
// document order.
func yamlVariableOrder(data []byte) []string {
	var doc struct {
		Variables yaml.Node `yaml:"variables"`
	}
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil
	}
	if doc.Variables.Kind != yaml.MappingNode {
		return nil
	}
	var order []string
	for i := 0; i+1 < len(doc.Variables.Content); i += 2 {
		order = append(order, doc.Variables.Content[i].Value)
	}
	return order
}

// completeOrder returns order restricted to keys of vars, followed by any
// keys the scan missed in sorted order.
func completeOrder(order []string, vars map[string]rawVariable) []string {
	seen := make(map[string]bool, len(vars))
	var out []string
	for _, k := range order {
		if _, ok := vars[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	var rest []string
	for k := range vars {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
