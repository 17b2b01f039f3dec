package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gnana997/figmagen/pkg/pipeline"
)

func newBuildCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Write figma-variables.json and the component data files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				res, err := p.WriteAll(p.State())
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "build", res)
				return nil
			})
		},
	}
}

func newBuildVariablesCmd(flags *globalFlags, use string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "Write " + pipeline.VariablesFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				res, err := p.WriteVariables(p.State(), p.Config().Output)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "variables", res)
				return nil
			})
		},
	}
}

func newBuildDataCmd(flags *globalFlags, use string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "Write components/<Name>.json and components.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				res, err := p.WriteData(p.State(), p.Config().Output)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), "data", res)
				return nil
			})
		},
	}
}

func printResult(w io.Writer, step string, res *pipeline.Result) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	for _, warning := range res.Warnings {
		yellow.Fprintf(w, "⚠ %s\n", warning)
	}
	green.Fprintf(w, "✓ %s: wrote %d files (%s)\n", step, len(res.Files), humanize.Bytes(uint64(res.Bytes)))
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
