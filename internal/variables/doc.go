// Package variables builds the rendering context for a new project. The
// reserved keys name and year are always supplied here; every other
// declared variable gets its value from a Source: the manifest defaults,
// an interactive prompt, or a values file.
package variables
