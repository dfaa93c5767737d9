// Package registry locates archetypes across template search roots.
// Roots are searched in priority order (explicitly configured locations,
// then the built-in ./templates root); within each root the candidate
// relative paths for a name are tried in order and the first existing
// path wins.
package registry
