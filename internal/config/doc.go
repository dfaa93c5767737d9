// Package config loads user settings for cproject: the vcpkg root, extra
// template search locations, and archetype name mappings. Settings come from
// ./.cproject.toml when present, otherwise ~/.config/cproject/cproject.toml,
// with CPROJECT_* environment variables taking precedence.
package config
