package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.eggybyte.com/classgen/internal/ui"
	"go.eggybyte.com/classgen/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show classgen version information",
	Long: `Display version information for the classgen CLI.

This command shows:
  • CLI version, git commit hash, and build timestamp
  • Go runtime version`,
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// --version and -v on the root command
	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
}

func runVersion(cmd *cobra.Command, args []string) {
	if ui.IsJSONOutput() {
		ui.Result(ui.LevelInfo, version.Get(), "%s", version.GetVersionString())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersionInfo())
}
