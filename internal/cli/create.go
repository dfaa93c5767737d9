package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/cproject-labs/cproject/internal/archetype"
	"github.com/cproject-labs/cproject/internal/config"
	"github.com/cproject-labs/cproject/internal/scaffold"
	"github.com/spf13/cobra"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

var (
	createOutputDir string
	createDefaults  bool
	createValues    string
	createNoHooks   bool
)

func init() {
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<project>)")
	createCmd.Flags().BoolVarP(&createDefaults, "defaults", "y", false, "Use default values for all variables without prompting")
	createCmd.Flags().BoolVar(&createDefaults, "yes", false, "Alias for --defaults")
	createCmd.Flags().StringVar(&createValues, "values", "", "YAML file with variable values")
	createCmd.Flags().BoolVar(&createNoHooks, "no-hooks", false, "Do not run the archetype's post-create hooks")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <archetype> <project>",
	Short: "Create a new project from an archetype",
	Long: `Create a new project directory from an archetype.

The archetype is looked up in each configured template location, then in
./templates. The names "app"/"exe" and "lib" are aliases for the default
executable and library archetypes.

Examples:
  cproject create app hello
  cproject create lib mathx --defaults
  cproject create my-team/service api --values values.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, project := args[0], args[1]
	if err := validateName(project); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := archetype.Load(name, archetype.LoadOptions{
		Locations: cfg.Templates.Locations,
		Mappings:  cfg.Archetypes,
		Version:   buildVersion,
		Log:       logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	env := map[string]string{}
	if cfg.VcpkgRoot != "" {
		env["VCPKG_ROOT"] = cfg.VcpkgRoot
	}

	result, err := a.Instantiate(cmd.Context(), project, resolveOutputDir(project), archetype.Options{
		UseDefaults: createDefaults,
		ValuesFile:  createValues,
		Stdin:       cmd.InOrStdin(),
		Stdout:      out,
		Stderr:      cmd.ErrOrStderr(),
		Env:         env,
		SkipHooks:   createNoHooks,
		OnStage:     func(s archetype.Stage) { printStage(out, a, s) },
		Log:         logger,
	})
	if err != nil {
		return err
	}

	printResult(out, a.Name, result)
	return nil
}

func printStage(w io.Writer, a *archetype.Archetype, s archetype.Stage) {
	switch s {
	case archetype.StageCollect:
		if len(a.Manifest.Variables) > 0 && !createDefaults && createValues == "" {
			fmt.Fprintln(w, headingStyle.Render(a.Manifest.Description))
		}
	case archetype.StageRender:
		fmt.Fprintln(w, stepStyle.Render("Rendering template..."))
	case archetype.StageHooks:
		fmt.Fprintln(w, stepStyle.Render(printer.Sprintf("Running %d post-create hooks...", len(a.Manifest.Hooks))))
	}
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must match pattern [A-Za-z0-9_][A-Za-z0-9_.-]*", name)
	}
	return nil
}

func resolveOutputDir(project string) string {
	if createOutputDir != "" {
		return createOutputDir
	}
	return filepath.Join(".", project)
}

func printResult(w io.Writer, name string, result *scaffold.Result) {
	fmt.Fprintln(w, successStyle.Render(printer.Sprintf("Created %s from %s (%d files)", result.OutputDir, name, len(result.Files))))
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
