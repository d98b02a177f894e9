package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/classgen/configx"
	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/core/log"
	"go.eggybyte.com/classgen/internal/configschema"
	"go.eggybyte.com/classgen/internal/projectfs"
	"go.eggybyte.com/classgen/internal/templates"
	"go.eggybyte.com/classgen/internal/ui"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the project setup",
	Long: `Check that classgen can generate classes in the project directory.

This command verifies:
  • Embedded templates parse
  • .classgen.yaml is valid
  • Header and source directories are writable

Example:
  classgen doctor --dir ./ex00`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorReport counts problems found by the checks.
type doctorReport struct {
	errors   int
	warnings int
}

func (r *doctorReport) ok(format string, args ...any) {
	ui.Success("  [+] "+format, args...)
}

func (r *doctorReport) warn(format string, args ...any) {
	r.warnings++
	ui.Warning("  [!] "+format, args...)
}

func (r *doctorReport) fail(format string, args ...any) {
	r.errors++
	ui.Error("  [x] "+format, args...)
}

// runDoctor executes the doctor command.
//
// Parameters:
//   - cmd: Cobra command
//   - args: Command arguments (none)
//
// Returns:
//   - error: INVALID_ARGUMENT when any check failed
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - Reads the config file and probes two directories
func runDoctor(cmd *cobra.Command, args []string) error {
	ui.Info("classgen project diagnostics")
	ui.Info("%s", strings.Repeat("=", 40))

	report := &doctorReport{}
	checkTemplates(report)

	cfg := checkConfig(report)

	ui.Info("")
	ui.Info("Environment:")
	logger, err := newLoggerFromEnv(cmd)
	if err != nil {
		report.fail("%v", err)
	} else {
		report.ok("%s* settings are valid", configx.EnvPrefix)
	}

	pfs := projectfs.NewProjectFS(projectDir, logger)
	ui.Info("")
	ui.Info("Project: %s", pfs.GetRootDir())
	checkOutputDir(report, pfs, "header_dir", cfg.HeaderDir)
	checkOutputDir(report, pfs, "source_dir", cfg.SourceDir)

	ui.Info("")
	if report.errors > 0 {
		return errors.Newf(errors.CodeInvalidArgument, "doctor found %d problem(s)", report.errors)
	}
	if report.warnings > 0 {
		ui.Warning("Ready with %d warning(s)", report.warnings)
		return nil
	}
	ui.Success("Ready to generate classes")
	return nil
}

func checkTemplates(report *doctorReport) {
	ui.Info("")
	ui.Info("Templates:")
	loader := templates.NewLoader()
	names, err := loader.ListTemplates()
	if err != nil {
		report.fail("Cannot list templates: %v", err)
		return
	}
	if err := loader.ValidateAllTemplates(); err != nil {
		report.fail("Template error: %v", err)
		return
	}
	report.ok("%d templates parse (%s)", len(names), strings.Join(names, ", "))
}

// checkConfig reports every diagnostic and returns a usable configuration,
// falling back to defaults when the file is broken.
func checkConfig(report *doctorReport) *configschema.Config {
	ui.Info("")
	ui.Info("Configuration:")
	path := configPath
	if path == "" {
		path = filepath.Join(projectDir, configschema.DefaultFileName)
	}

	cfg, diags := configschema.Load(path)
	for _, item := range diags.Items() {
		switch item.Severity {
		case configschema.SeverityError:
			report.fail("%s", item.String())
		case configschema.SeverityWarning:
			report.warn("%s", item.String())
		default:
			ui.Info("  [-] %s", item.String())
		}
	}
	if diags.HasErrors() || cfg == nil {
		return configschema.DefaultConfig()
	}
	report.ok("%s is valid", path)
	return cfg
}

func checkOutputDir(report *doctorReport, pfs *projectfs.ProjectFS, key, dir string) {
	exists, err := pfs.FileExists(dir)
	switch {
	case err != nil:
		report.fail("%s %s: %v", key, dir, err)
	case !exists:
		ui.Info("  [-] %s %s does not exist yet and will be created", key, dir)
	default:
		if err := pfs.CheckWritable(dir); err != nil {
			report.fail("%s %s: %v", key, dir, err)
			return
		}
		files, err := pfs.ListFiles(dir)
		if err != nil {
			report.fail("%s %s: %v", key, dir, err)
			return
		}
		report.ok("%s %s is writable (%d files)", key, dir, len(files))
	}
}

// newLoggerFromEnv validates the CLASSGEN_* environment the same way the
// generating commands do.
func newLoggerFromEnv(cmd *cobra.Command) (log.Logger, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	return newLogger(cmd, settings)
}
