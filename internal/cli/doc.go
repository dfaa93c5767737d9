// Package cli defines the Cobra command tree for the cproject CLI. Each file
// in this package registers one top-level command (create, list, show, etc.)
// with the root command. Command implementations delegate to internal packages
// for the work and only handle flags, output formatting, and user interaction.
package cli
