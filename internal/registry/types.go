package registry

// Source is a template search root.
type Source struct {
	Name     string // e.g., "config[0]", "builtin"
	BasePath string // directory holding one subdirectory per archetype
}

// BuiltinRoot is the implicit search root consulted after configured ones.
const BuiltinRoot = "./templates"

// Resolved is an archetype whose template directory was found.
type Resolved struct {
	Name      string // name the user asked for, e.g. "app"
	Candidate string // relative path that matched, e.g. "default/executable"
	Dir       string // absolute template root
	Source    Source // root the match was found under
}

// Discovered is an archetype found while listing a root.
type Discovered struct {
	Name         string // path relative to the root, slash separated
	Dir          string
	ManifestPath string
	Source       Source
	Shadowed     bool // a higher-priority root has an archetype of the same name
}
