// Package manifest handles parsing and validation of archetype manifests.
// A manifest lives at the root of an archetype's template directory as
// archetype.toml (or archetype.yaml) and declares a description, the
// variables to collect, and the post-create hook commands. Manifests are
// validated against the JSON Schema embedded in this package.
package manifest
