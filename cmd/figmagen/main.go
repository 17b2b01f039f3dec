// Command figmagen turns a component registry and theme CSS into Figma
// variables and component data.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = "0.1.0-dev"

// ExitError carries a process exit code through cobra.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}

	code := 1
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Err == nil {
			return code
		}
	}
	color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
	return code
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "figmagen",
		Short:         "Generate Figma variables and component data from a component registry",
		Long:          "figmagen reads a component registry and theme CSS, then writes figma-variables.json and per-component layer data for the Figma plugin.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	flags.register(root)

	build := newBuildCmd(flags)
	build.AddCommand(newBuildVariablesCmd(flags, "variables"), newBuildDataCmd(flags, "data"))

	root.AddCommand(
		build,
		newBuildVariablesCmd(flags, "build:variables"),
		newBuildDataCmd(flags, "build:data"),
		newParseCmd(flags),
		newOpacityCmd(flags),
		newLintCmd(flags),
		newInspectCmd(flags),
		newServeCmd(flags),
		newWatchCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "figmagen %s\n", version)
		},
	}
}
