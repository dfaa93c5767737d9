// Package scaffold renders an archetype's template tree into a new project
// directory. Relative paths and text file contents are rendered through the
// template engine; files that are not valid UTF-8 are copied verbatim.
package scaffold
