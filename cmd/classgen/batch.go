package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/classgen/internal/configschema"
	"go.eggybyte.com/classgen/internal/generators"
	"go.eggybyte.com/classgen/internal/ui"
)

var (
	batchJobs   int
	batchForce  bool
	batchDryRun bool
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Generate every class listed in a manifest",
	Long: `Generate several classes from a YAML manifest.

The manifest lists classes with the same three inputs create takes. Variables
and methods may be one comma-separated string or a list of single items:

  classes:
    - name: Zombie
      variables: std::string _name
      methods:
        - void announce() const
    - name: Horde

Classes are generated in parallel (--jobs). A failing class does not stop the
others; the command fails if any class failed.

Examples:
  classgen batch classes.yaml
  classgen batch classes.yaml --jobs 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "Classes generated in parallel (default from config, 4)")
	batchCmd.Flags().BoolVarP(&batchForce, "force", "f", false, "Overwrite existing files without asking")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "Render and report without writing")
}

// batchResult is the JSON data reported per class.
type batchResult struct {
	Class  string `json:"class"`
	Header string `json:"header,omitempty"`
	Source string `json:"source,omitempty"`
	Error  string `json:"error,omitempty"`
}

// runBatch executes the batch command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Manifest path
//
// Returns:
//   - error: Manifest, configuration or aggregated generation error
//
// Concurrency:
//   - Generation fans out to --jobs goroutines
//
// Performance:
//   - Two file writes per class
func runBatch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd, overrides{jobs: batchJobs})
	if err != nil {
		return err
	}

	manifest, diags := configschema.LoadManifest(args[0])
	reportDiagnostics(diags)
	if err := diags.Err(); err != nil {
		return err
	}

	reqs := make([]generators.Request, 0, len(manifest.Classes))
	for _, class := range manifest.Classes {
		reqs = append(reqs, generators.Request{
			ClassName: class.Name,
			Variables: string(class.Variables),
			Methods:   string(class.Methods),
		})
	}

	gen := generators.NewClassGenerator(a.fs, a.logger, generators.Options{
		HeaderDir:     a.cfg.HeaderDir,
		SourceDir:     a.cfg.SourceDir,
		Force:         batchForce,
		DryRun:        batchDryRun,
		RenderOptions: a.cfg.RenderOptions(),
	})

	ui.Info("Generating %d classes with %d jobs", len(reqs), a.cfg.Jobs)
	outcomes, batchErr := gen.Batch(cmd.Context(), reqs, a.cfg.Jobs)

	succeeded := 0
	for _, o := range outcomes {
		report := batchResult{Class: o.Request.ClassName}
		switch {
		case o.Err != nil:
			report.Error = o.Err.Error()
			ui.Result(ui.LevelError, report, "%s: %v", o.Request.ClassName, o.Err)
		case batchDryRun:
			report.Header, report.Source = o.Result.HeaderPath, o.Result.SourcePath
			ui.Result(ui.LevelInfo, report, "%s: would write %s and %s", o.Request.ClassName, o.Result.HeaderPath, o.Result.SourcePath)
			for _, path := range o.Result.Conflicts {
				ui.Warning("%s already exists", path)
			}
		default:
			succeeded++
			report.Header, report.Source = o.Result.HeaderPath, o.Result.SourcePath
			ui.Result(ui.LevelSuccess, report, "%s: created %s and %s", o.Request.ClassName, o.Result.HeaderPath, o.Result.SourcePath)
		}
	}

	if !batchDryRun {
		ui.Info("%d of %d classes generated", succeeded, len(outcomes))
	}
	return batchErr
}
