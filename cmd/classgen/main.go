// Package main provides the classgen CLI entry point.
//
// Overview:
//   - Responsibility: CLI command parsing, configuration loading and execution
//   - Key Types: Cobra command structure
//   - Concurrency Model: Single-threaded CLI execution; batch fans out internally
//   - Error Semantics: Exit code 1 with a user-facing message on any error
//   - Performance Notes: Fast startup, templates parsed on first use
//
// Usage:
//
//	classgen create Zombie "std::string _name" "void announce() const"
//	classgen batch classes.yaml --jobs 8
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/internal/ui"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	configPath     string
	projectDir     string
)

// rootCmd represents the base command when called without any subcommands.
//
// Parameters:
//   - None (global flags are parsed automatically)
//
// Returns:
//   - None (executes subcommands)
//
// Concurrency:
//   - Single-threaded CLI execution
//
// Performance:
//   - Fast startup, minimal initialization
var rootCmd = &cobra.Command{
	Use:   "classgen",
	Short: "C++ canonical-form class generator",
	Long: `classgen scaffolds C++ classes in canonical form.

For a class name, a list of member variables and a list of member methods it
writes <Class>.hpp (include guard, canonical declarations, members) and
<Class>.cpp (constructors, copy assignment, destructor, method stubs).

Project defaults are read from .classgen.yaml and CLASSGEN_* environment
variables; command-line flags take precedence over both.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetVerbose(verbose)
		ui.SetNonInteractive(nonInteractive)
		ui.SetJSONOutput(jsonOutput)
		ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		ui.SetInput(cmd.InOrStdin())
	},
}

// Execute runs the root command and returns the process exit code.
//
// Parameters:
//   - ctx: Context canceled on interrupt
//
// Returns:
//   - int: 0 on success, 1 on any error
//
// Concurrency:
//   - Single-threaded execution
//
// Performance:
//   - Fast command resolution and execution
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		return 1
	}
	return 0
}

func reportError(err error) {
	ui.Error("%v", err)

	switch errors.CodeOf(err) {
	case errors.CodeMalformedDeclaration:
		ui.Info(`Variables look like "std::string _name, int _hp"; methods like "void speak(), int getAge() const"`)
	case errors.CodeAlreadyExists:
		ui.Info("Use --force to overwrite existing files")
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Project configuration file (default <dir>/.classgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", ".", "Project root directory")
}

// main is the entry point for the classgen CLI tool.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx)
	stop()
	os.Exit(code)
}
