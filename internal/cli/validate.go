package cli

import (
	"fmt"

	"github.com/cproject-labs/cproject/internal/apperr"
	"github.com/cproject-labs/cproject/internal/manifest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate an archetype manifest",
	Long: `Validate the archetype manifest in dir (default: the current directory)
against the manifest schema and report every issue found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		fsys := afero.NewOsFs()
		out := cmd.OutOrStdout()

		path, err := manifest.Find(fsys, dir)
		if err != nil {
			return err
		}
		result, err := manifest.ValidateFile(fsys, path)
		if err != nil {
			return err
		}
		if !result.Valid {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s is invalid:", path)))
			for _, issue := range result.Issues {
				loc := issue.Path
				if loc == "" {
					loc = "/"
				}
				fmt.Fprintf(out, "  %s: %s\n", loc, issue.Message)
			}
			return apperr.New(apperr.ErrManifestInvalid, "%s: %d issue(s)", path, len(result.Issues))
		}

		// Schema-valid manifests can still fail typed decoding or the
		// requires check.
		m, err := manifest.ParseFile(fsys, path)
		if err != nil {
			return err
		}
		if err := m.CheckRequires(buildVersion); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render(err.Error()))
		}
		fmt.Fprintln(out, successStyle.Render(printer.Sprintf("%s is valid (%d variables, %d hooks)", path, len(m.Variables), len(m.Hooks))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
