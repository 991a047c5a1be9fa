// Command bguiparse is a thin CLI front-end over package bgui. It carries
// no parsing logic of its own — everything it prints comes from the
// library's ParsedFile and diagnostics.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bgui/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bguiparse",
	Short: "Decode and inspect .bgui binary UI description files",
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func resolveColor(cmd *cobra.Command, out *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode == "auto" && isTerminal(out))
}
