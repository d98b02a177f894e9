package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.eggybyte.com/classgen/internal/decl"
	"go.eggybyte.com/classgen/internal/render"
	"go.eggybyte.com/classgen/internal/ui"
)

// guardCmd represents the guard command.
var guardCmd = &cobra.Command{
	Use:   "guard <ClassName>",
	Short: "Print the include guard for a class",
	Long: `Print the include-guard token generated for a class name.

Examples:
  classgen guard My_Class    # MY_CLASS_HPP`,
	Args: cobra.ExactArgs(1),
	RunE: runGuard,
}

func init() {
	rootCmd.AddCommand(guardCmd)
}

func runGuard(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if err := decl.ValidateClassName(name); err != nil {
		return err
	}

	guard := render.GuardToken(name)
	if ui.IsJSONOutput() {
		ui.Result(ui.LevelInfo, map[string]string{"class": name, "guard": guard}, "%s", guard)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), guard)
	return nil
}
