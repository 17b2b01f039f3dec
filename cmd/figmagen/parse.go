package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/figmagen/pkg/pipeline"
	"github.com/gnana997/figmagen/pkg/tokens"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "parse <classes>...",
		Short:   "Print the parsed style of a class string as JSON",
		Example: `  figmagen parse "h-9 px-3 rounded-lg bg-kumo-brand text-white"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				style := p.State().Gen.Parser.Parse(strings.Join(args, " "))
				return writeJSON(cmd, style)
			})
		},
	}
}

func newOpacityCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "opacity [classes]...",
		Short: "List opacity modifiers in the given classes, or in the whole project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return writeJSON(cmd, orEmpty(tokens.ExtractOpacityModifiers(args...)))
			}
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				return writeJSON(cmd, orEmpty(p.State().OpacityModifiers()))
			})
		},
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
