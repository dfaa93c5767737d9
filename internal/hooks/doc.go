// Package hooks runs an archetype's post-create commands inside the newly
// generated project, in declaration order, stopping at the first failure.
package hooks
