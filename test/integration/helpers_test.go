//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds ~/.config/cproject
	TeamDir    string // configured template location
	WorkDir    string // working directory, holds ./templates
	BuiltinDir string // WorkDir/templates
	ConfigPath string // user config file
}

// setupTestEnv creates isolated temp directories, points HOME at one of them,
// and changes into the work directory. Everything is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		TeamDir: t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.BuiltinDir = filepath.Join(env.WorkDir, "templates")
	env.ConfigPath = filepath.Join(env.HomeDir, ".config", "cproject", "cproject.toml")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("CPROJECT_CONFIG", "")
	t.Setenv("CPROJECT_LOG", "")
	t.Chdir(env.WorkDir)

	return env
}

// writeConfig writes the user config file.
func writeConfig(t *testing.T, env *testEnv, content string) {
	t.Helper()
	writeFile(t, env.ConfigPath, content)
}

// setupArchetypes creates the default executable and library archetypes in
// the built-in root and a team archetype set in TeamDir.
func setupArchetypes(t *testing.T, env *testEnv) {
	t.Helper()

	// --- Built-in executable ---
	writeManifest(t, env.BuiltinDir, "default/executable", `description = "Builtin executable"

[variables.license]
prompt = "License"
default = "MIT"

[variables.cxx_standard]
prompt = "C++ standard"
default = "20"

[hooks.post_create]
commands = [
  "sh -c 'echo configured {{name}} > .configured'",
]
`)
	writeFile(t, filepath.Join(env.BuiltinDir, "default/executable", "CMakeLists.txt.tmpl"), `cmake_minimum_required(VERSION 3.20)
project({{name}} LANGUAGES CXX)
set(CMAKE_CXX_STANDARD {{cxx_standard}})
add_executable({{name}} src/main.cpp)
`)
	writeFile(t, filepath.Join(env.BuiltinDir, "default/executable", "src/main.cpp"), `#include <iostream>
int main() { std::cout << "{{name}}\n"; }
`)
	writeFile(t, filepath.Join(env.BuiltinDir, "default/executable", "LICENSE.tmpl"), "{{license}} License\nCopyright (c) {{year}}\n")
	writeBytes(t, filepath.Join(env.BuiltinDir, "default/executable", "assets/icon.ico"), []byte{0x00, 0x00, 0x01, 0x00, 0xff, 0xfe, 0x80})

	// --- Built-in library (YAML manifest) ---
	writeFile(t, filepath.Join(env.BuiltinDir, "default/library", "archetype.yaml"), `description: Builtin library
variables:
  namespace:
    prompt: C++ namespace
    default: lib
`)
	writeFile(t, filepath.Join(env.BuiltinDir, "default/library", "include/{{name}}/{{name}}.hpp"), "#pragma once\nnamespace {{namespace}} {}\n")

	// --- Team executable shadows the built-in one ---
	writeManifest(t, env.TeamDir, "default/executable", `description = "Team executable"

[hooks.post_create]
commands = ["sh -c 'touch team.marker'"]
`)
	writeFile(t, filepath.Join(env.TeamDir, "default/executable", "README.md.tmpl"), "# {{name}} (team)\n")

	// --- Team archetype with a failing hook ---
	writeManifest(t, env.TeamDir, "failing", `description = "Fails in the second hook"

[hooks.post_create]
commands = [
  "sh -c 'touch one.marker'",
  "sh -c 'exit 4'",
  "sh -c 'touch three.marker'",
]
`)
	writeFile(t, filepath.Join(env.TeamDir, "failing", "README.md"), "failing\n")
}

// writeManifest creates archetype.toml at root/<archetypePath>/archetype.toml.
func writeManifest(t *testing.T, root, archetypePath, content string) {
	t.Helper()
	writeFile(t, filepath.Join(root, archetypePath, "archetype.toml"), content)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	writeBytes(t, path, []byte(content))
}

func writeBytes(t *testing.T, path string, data []byte) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
