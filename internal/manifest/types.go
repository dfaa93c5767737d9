package manifest

// Manifest file names, in lookup order.
const (
	FileName     = "archetype.toml"
	YAMLFileName = "archetype.yaml"
)

// FileNames lists every recognized manifest file name in lookup order.
var FileNames = []string{FileName, YAMLFileName}

// IsManifestFile returns true if name is a recognized manifest file name.
func IsManifestFile(name string) bool {
	for _, n := range FileNames {
		if name == n {
			return true
		}
	}
	return false
}

// Manifest is the parsed, immutable description of an archetype.
type Manifest struct {
	Description string
	Requires    string     // semver constraint on the CLI version, may be empty
	Variables   []Variable // declaration order
	Hooks       []string   // post-create command templates, declaration order
	Path        string     // file the manifest was read from
}

// Variable is one value the user is asked for.
type Variable struct {
	Key     string
	Prompt  string
	Default *string
}

// DefaultValue returns the declared default, or "" when there is none.
func (v Variable) DefaultValue() string {
	if v.Default == nil {
		return ""
	}
	return *v.Default
}

// rawManifest mirrors the on-disk layout for both TOML and YAML.
type rawManifest struct {
	Description string                 `toml:"description" yaml:"description"`
	Requires    string                 `toml:"requires" yaml:"requires"`
	Variables   map[string]rawVariable `toml:"variables" yaml:"variables"`
	Hooks       rawHooks               `toml:"hooks" yaml:"hooks"`
}

type rawVariable struct {
	Prompt  string  `toml:"prompt" yaml:"prompt"`
	Default *string `toml:"default" yaml:"default"`
}

type rawHooks struct {
	PostCreate      rawHookGroup `toml:"post_create" yaml:"post_create"`
	PostCreateAlias rawHookGroup `toml:"post-create" yaml:"post-create"`
}

type rawHookGroup struct {
	Commands []string `toml:"commands" yaml:"commands"`
}
