// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	ConfigDir       string `yaml:"config_dir"`
	ConfigFile      string `yaml:"config_file"`
	LocalConfigFile string `yaml:"local_config_file"`
	EnvPrefix       string `yaml:"env_prefix"`
	GoModule        string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:         "cproject",
			DisplayName:     "cproject",
			Description:     "Configuration-driven C++ project manager",
			ConfigDir:       ".config/cproject",
			ConfigFile:      "cproject.toml",
			LocalConfigFile: ".cproject.toml",
			EnvPrefix:       "CPROJECT",
			GoModule:        "github.com/cproject-labs/cproject",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "cproject").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the config directory relative to $HOME (e.g., ".config/cproject").
func ConfigDir() string { load(); return defaults.ConfigDir }

// ConfigFile returns the user-level config file name (e.g., "cproject.toml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// LocalConfigFile returns the per-directory config file name (e.g., ".cproject.toml").
func LocalConfigFile() string { load(); return defaults.LocalConfigFile }

// EnvPrefix returns the environment variable prefix (e.g., "CPROJECT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
// Used by release tooling, not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("config") → "CPROJECT_CONFIG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
