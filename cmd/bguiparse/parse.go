package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bgui"
	"bgui/internal/diagfmt"
)

var parseCmd = &cobra.Command{
	Use:   "parse <path>",
	Short: "Parse a .bgui file and print its model",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format for diagnostics (pretty|json|msgpack)")
	parseCmd.Flags().String("dump", "", "print a table instead of diagnostics (containers|register)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	pf, err := bgui.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bguiparse: %v\n", err)
		os.Exit(2)
		return nil
	}

	dump, _ := cmd.Flags().GetString("dump")
	switch dump {
	case "containers":
		return diagfmt.FormatContainersPretty(os.Stdout, pf.Containers)
	case "register":
		return diagfmt.FormatRegisterPretty(os.Stdout, pf.Register)
	case "":
		// fall through to diagnostic output below
	default:
		return fmt.Errorf("unknown --dump value %q", dump)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "pretty":
		opts := diagfmt.PrettyOpts{Color: resolveColor(cmd, os.Stdout)}
		return diagfmt.Pretty(os.Stdout, pf.Diagnostics, opts)
	case "json":
		return diagfmt.JSON(os.Stdout, pf.Diagnostics)
	case "msgpack":
		return diagfmt.Msgpack(os.Stdout, pf.Diagnostics)
	default:
		return fmt.Errorf("unknown --format value %q", format)
	}
}

// exitCode maps a parse error to the CLI's exit status: 0 on success, 2
// on fatal error. Kept separate from runParse's early os.Exit so tests
// can exercise the mapping without forking a process.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, bgui.ErrRegisterNotFound) || errors.Is(err, bgui.ErrFileTooShort) {
		return 2
	}
	return 2
}
