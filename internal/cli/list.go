package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/cproject-labs/cproject/internal/config"
	"github.com/cproject-labs/cproject/internal/manifest"
	"github.com/cproject-labs/cproject/internal/registry"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listAll     bool
	listRefresh bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available archetypes",
	Long: `List every archetype found under the configured template locations and
./templates. An archetype in an earlier location hides one with the same name
in a later location; pass --all to show hidden ones too.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include archetypes hidden by an earlier location")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Rebuild the archetype index instead of using the cached one")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents an archetype for display.
type listEntry struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Shadowed    bool   `json:"shadowed,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	cachePath := filepath.Join(config.Dir(), registry.IndexFile)
	if listRefresh {
		_ = fsys.Remove(cachePath)
	}
	found := registry.DiscoverCached(fsys, registry.Sources(cfg.Templates.Locations), cachePath)

	var entries []listEntry
	for _, d := range found {
		if d.Shadowed && !listAll {
			continue
		}
		entry := listEntry{
			Name:     d.Name,
			Source:   d.Source.Name,
			Path:     d.Dir,
			Shadowed: d.Shadowed,
		}
		m, err := manifest.ParseFile(fsys, d.ManifestPath)
		if err != nil {
			logger.WithField("path", d.ManifestPath).WithError(err).Debug("skipping description")
			entry.Description = "(invalid manifest)"
		} else {
			entry.Description = m.Description
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archetypes found.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		name := e.Name
		if e.Shadowed {
			name += " (hidden)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, e.Source, e.Description)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling list output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
