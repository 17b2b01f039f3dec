package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gnana997/figmagen/pkg/lint"
	"github.com/gnana997/figmagen/pkg/pipeline"
)

func newLintCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lint [classes]...",
		Short: "Report colour classes that use unknown or primitive tokens",
		Long: "Without arguments, lint checks every registry class string and every class string found under the configured sources. " +
			"Errors, and warnings in strict mode, exit with status 1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				st := p.State()
				var report lint.Report
				if len(args) > 0 {
					l := lint.NewLinter(st.Tokens, p.Logger())
					report = lint.Summarize(l.LintClasses("args", strings.Join(args, " ")))
				} else {
					report = p.Lint(st)
				}

				if asJSON {
					if err := writeJSON(cmd, report); err != nil {
						return err
					}
				} else {
					printReport(cmd, report)
				}
				if report.Failed(p.Config().Strict) {
					return &ExitError{Code: 1}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, report lint.Report) {
	w := cmd.OutOrStdout()
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)

	for _, v := range report.Violations {
		sev := yellow
		if v.Severity == lint.SeverityError {
			sev = red
		}
		sev.Fprintf(w, "%-7s", v.Severity)
		fmt.Fprintf(w, " %s  %s  [%s]\n", v.Source, v.Message, v.Rule)
	}
	if len(report.Violations) == 0 {
		green.Fprintln(w, "✓ no colour token problems")
		return
	}
	fmt.Fprintf(w, "\n%d errors, %d warnings\n", report.Errors, report.Warnings)
}
