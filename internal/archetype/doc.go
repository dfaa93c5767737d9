// Package archetype ties location, manifest parsing, variable collection,
// rendering, and post-create hooks into a single instantiate operation.
//
// A failed instantiation leaves whatever was already written in place;
// only an existing destination is rejected before anything is touched.
package archetype
