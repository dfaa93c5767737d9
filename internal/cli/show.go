package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/cproject-labs/cproject/internal/archetype"
	"github.com/cproject-labs/cproject/internal/config"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <archetype>",
	Short: "Show where an archetype resolves and what it asks for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a, err := archetype.Load(args[0], archetype.LoadOptions{
			Locations: cfg.Templates.Locations,
			Mappings:  cfg.Archetypes,
			Version:   buildVersion,
			Log:       logger,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headingStyle.Render(a.Name))
		fmt.Fprintf(out, "%s\n\n", a.Manifest.Description)
		fmt.Fprintf(out, "Path:     %s\n", a.Root)
		fmt.Fprintf(out, "Source:   %s (%s)\n", a.Source.Name, a.Candidate)
		fmt.Fprintf(out, "Manifest: %s\n", a.Manifest.Path)
		if a.Manifest.Requires != "" {
			fmt.Fprintf(out, "Requires: %s\n", a.Manifest.Requires)
		}

		if len(a.Manifest.Variables) > 0 {
			fmt.Fprintln(out, "\nVariables:")
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "  KEY\tPROMPT\tDEFAULT")
			for _, v := range a.Manifest.Variables {
				def := dimStyle.Render("(none)")
				if v.Default != nil {
					def = *v.Default
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\n", v.Key, v.Prompt, def)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if len(a.Manifest.Hooks) > 0 {
			fmt.Fprintln(out, "\nPost-create hooks:")
			for i, h := range a.Manifest.Hooks {
				fmt.Fprintf(out, "  %d. %s\n", i+1, h)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
