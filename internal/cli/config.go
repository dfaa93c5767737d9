package cli

import (
	"fmt"

	"github.com/cproject-labs/cproject/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write cproject settings. The file in effect is $CPROJECT_CONFIG,
./.cproject.toml, or ~/.config/cproject/cproject.toml, in that order.

Keys: vcpkg-root, templates.locations (comma-separated), archetypes.<name>.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Open("")
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := s.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, s.Path())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Open("")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := config.Resolve()
		if p == "" {
			p = config.FilePath() + " (not created)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}
