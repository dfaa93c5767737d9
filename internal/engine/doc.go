// Package engine renders double-brace templates against a project's
// variable context. The same engine is used for relative paths, file
// bodies, and hook command lines.
package engine
