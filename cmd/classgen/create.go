package main

import (
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/internal/generators"
	"go.eggybyte.com/classgen/internal/ui"
)

var (
	createHeaderDir string
	createSourceDir string
	createForce     bool
	createDryRun    bool
)

// createCmd represents the create command.
var createCmd = &cobra.Command{
	Use:   "create [ClassName] [variables] [methods]",
	Short: "Generate <Class>.hpp and <Class>.cpp",
	Long: `Generate a canonical-form C++ class.

Variables are a comma-separated list of "<type> <name>" items; methods are a
comma-separated list of "<returnType> <name>(<parameters>)" items, optionally
followed by qualifiers such as const. Commas inside parentheses or angle
brackets do not separate items.

With no arguments and an interactive terminal the three values are prompted for.

Examples:
  classgen create Zombie
  classgen create Zombie "std::string _name, int _hp" "void announce() const, int hit(int dmg, bool crit)"
  classgen create Weapon "std::string _type" "const std::string& getType() const" --dry-run`,
	Args: cobra.MaximumNArgs(3),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createHeaderDir, "header-dir", "", "Directory for the header file (default from config, include)")
	createCmd.Flags().StringVar(&createSourceDir, "source-dir", "", "Directory for the source file (default from config, src)")
	createCmd.Flags().BoolVarP(&createForce, "force", "f", false, "Overwrite existing files after confirmation")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Print the generated files instead of writing them")
}

// runCreate executes the create command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Up to three positional arguments (class name, variables, methods)
//
// Returns:
//   - error: Parse, configuration or write error
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Two file writes
func runCreate(cmd *cobra.Command, args []string) error {
	req, err := requestFromArgs(cmd, args)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd, overrides{headerDir: createHeaderDir, sourceDir: createSourceDir})
	if err != nil {
		return err
	}

	gen := generators.NewClassGenerator(a.fs, a.logger, generators.Options{
		HeaderDir:     a.cfg.HeaderDir,
		SourceDir:     a.cfg.SourceDir,
		Force:         createForce,
		Confirm:       confirmOverwrite,
		DryRun:        createDryRun,
		RenderOptions: a.cfg.RenderOptions(),
	})

	ui.Debug("Generating class %s", req.ClassName)
	result, err := gen.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if createDryRun {
		ui.Block(result.HeaderPath, result.Files.Header)
		ui.Block(result.SourcePath, result.Files.Source)
		for _, path := range result.Conflicts {
			ui.Warning("%s already exists", path)
		}
		return nil
	}

	ui.Result(ui.LevelSuccess, map[string]string{
		"class":  result.ClassName,
		"header": result.HeaderPath,
		"source": result.SourcePath,
	}, "Created %s and %s", result.HeaderPath, result.SourcePath)
	return nil
}

func confirmOverwrite(paths []string) bool {
	return ui.Confirm("Overwrite %s?", strings.Join(paths, ", "))
}

// requestFromArgs fills a request from positional arguments, prompting for
// all three values when none were given and stdin is a terminal.
func requestFromArgs(cmd *cobra.Command, args []string) (generators.Request, error) {
	if len(args) == 0 {
		if ui.IsNonInteractive() || !isTerminal(cmd.InOrStdin()) {
			return generators.Request{}, errors.New(errors.CodeInvalidClassName, "class name is required")
		}
		return promptRequest()
	}

	var req generators.Request
	req.ClassName = args[0]
	if len(args) > 1 {
		req.Variables = args[1]
	}
	if len(args) > 2 {
		req.Methods = args[2]
	}
	return req, nil
}

func promptRequest() (generators.Request, error) {
	var req generators.Request
	var err error

	if req.ClassName, err = ui.Prompt("Class name", "Zombie"); err != nil {
		return req, err
	}
	if req.Variables, err = ui.Prompt("Variables", "std::string _name, int _hp"); err != nil {
		return req, err
	}
	if req.Methods, err = ui.Prompt("Methods", "void announce() const"); err != nil {
		return req, err
	}
	return req, nil
}
