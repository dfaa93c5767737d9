package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cproject-labs/cproject/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "toml"

// Known keys.
const (
	KeyVcpkgRoot  = "vcpkg-root"
	KeyLocations  = "templates.locations"
	KeyArchetypes = "archetypes"
)

// Config is the decoded settings.
type Config struct {
	VcpkgRoot  string            `mapstructure:"vcpkg-root"`
	Templates  Templates         `mapstructure:"templates"`
	Archetypes map[string]string `mapstructure:"archetypes"`
}

// Templates lists extra archetype search roots, searched in order before
// the built-in root.
type Templates struct {
	Locations []string `mapstructure:"locations"`
}

// Dir returns the user config directory (~/.config/cproject).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.ConfigDir())
	}
	return filepath.Join(home, branding.ConfigDir())
}

// FilePath returns the user config file (~/.config/cproject/cproject.toml).
func FilePath() string {
	return filepath.Join(Dir(), branding.ConfigFile())
}

// LocalFilePath returns the project-local config file in the working directory.
func LocalFilePath() string {
	return branding.LocalConfigFile()
}

// Resolve returns the config file in effect: $CPROJECT_CONFIG, then the
// local file, then the user file. It returns "" when none exists.
func Resolve() string {
	if p := os.Getenv(branding.EnvVar("CONFIG")); p != "" {
		return ExpandHome(p)
	}
	for _, p := range []string{LocalFilePath(), FilePath()} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Store is a config file plus environment overrides.
type Store struct {
	v    *viper.Viper
	path string
}

// Open reads the config at path, or at Resolve() when path is empty.
// A missing file yields defaults.
func Open(path string) (*Store, error) {
	if path == "" {
		path = Resolve()
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// Defaults make the keys visible to Unmarshal so env overrides apply.
	v.SetDefault(KeyVcpkgRoot, "")
	v.SetDefault(KeyLocations, []string{})

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}
	return &Store{v: v, path: path}, nil
}

// Path returns the file the store reads from and writes to. Empty until a
// file is resolved or written.
func (s *Store) Path() string { return s.path }

// Config decodes the settings and expands a leading ~ in paths.
func (s *Store) Config() (*Config, error) {
	var c Config
	if err := s.v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	c.VcpkgRoot = ExpandHome(c.VcpkgRoot)
	for i, loc := range c.Templates.Locations {
		c.Templates.Locations[i] = ExpandHome(loc)
	}
	if c.Archetypes == nil {
		c.Archetypes = map[string]string{}
	}
	return &c, nil
}

// Get returns a config value as text. Lists are comma-separated; maps are
// rendered as sorted key=value pairs. Unset keys yield "".
func (s *Store) Get(key string) string {
	switch val := s.v.Get(key).(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(val, ",")
	case []interface{}:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, val[k])
		}
		return strings.Join(parts, ",")
	default:
		return s.v.GetString(key)
	}
}

// Set writes key=value to the store's file, creating the user config file
// when no file is in effect. templates.locations takes a comma-separated list.
func (s *Store) Set(key, value string) error {
	if s.path == "" {
		if err := EnsureDir(); err != nil {
			return err
		}
		s.path = FilePath()
	}

	if key == KeyLocations {
		s.v.Set(key, splitList(value))
	} else {
		s.v.Set(key, value)
	}

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// EnsureDir creates the user config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load resolves and decodes the config in effect.
func Load() (*Config, error) {
	s, err := Open("")
	if err != nil {
		return nil, err
	}
	return s.Config()
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
