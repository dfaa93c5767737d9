package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/cproject-labs/cproject/internal/branding"
	"github.com/cproject-labs/cproject/internal/config"
	"github.com/cproject-labs/cproject/internal/registry"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and environment info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is what `version` reports. Besides the build stamp it names
// the runtime and where archetypes and config are looked up, which is the
// usual first question when an archetype resolves unexpectedly.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`
	Config    string `json:"config,omitempty"`
	Templates string `json:"templates"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Config:    config.Resolve(),
		Templates: registry.BuiltinRoot,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and environment information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		info := currentVersion()
		if versionJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		cfg := info.Config
		if cfg == "" {
			cfg = "none"
		}
		fmt.Fprintf(out, "%s %s (commit %s, built %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
		fmt.Fprintf(out, "  runtime:   %s %s\n", info.Go, info.Platform)
		fmt.Fprintf(out, "  config:    %s\n", cfg)
		fmt.Fprintf(out, "  templates: %s\n", info.Templates)
		return nil
	},
}
