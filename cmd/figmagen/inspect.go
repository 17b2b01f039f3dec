package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/figmagen/pkg/generator"
	"github.com/gnana997/figmagen/pkg/pipeline"
	"github.com/gnana997/figmagen/pkg/registry"
)

const maxWidth = 80

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <component>",
		Short: "Show a component's props, class strings and generated variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withProject(cmd, func(p *pipeline.Pipeline) error {
				st := p.State()
				qs := registry.NewQueryService(st.Registry)
				comp, ok := qs.GetComponent(args[0])
				if !ok {
					return fmt.Errorf("component %q not found in registry", args[0])
				}

				var set *generator.ComponentSet
				if name, known := registry.ParseComponentName(comp.Name); known {
					var err error
					if set, err = generator.Generate(st.Gen, name, generator.Options{}); err != nil {
						return err
					}
				}

				if asJSON {
					return writeJSON(cmd, struct {
						Component *registry.Component     `json:"component"`
						Set       *generator.ComponentSet `json:"set,omitempty"`
					}{comp, set})
				}
				printComponentHuman(cmd.OutOrStdout(), comp, args[0], set)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the entry and generated set as JSON")
	return cmd
}

// printComponentHuman prints a readable component summary.
func printComponentHuman(w io.Writer, comp *registry.Component, requested string, set *generator.ComponentSet) {
	header := comp.Name
	if !strings.EqualFold(requested, comp.Name) {
		header = fmt.Sprintf("%s  (sub-component of %s)", requested, comp.Name)
	}
	fmt.Fprintf(w, "%s  [%s]\n", header, comp.Category)

	if comp.Description != "" {
		fmt.Fprintln(w)
		printWrapped(w, comp.Description, 0, maxWidth)
	}

	fmt.Fprintln(w)
	printPropsSection(w, "Props", comp)

	fmt.Fprintln(w)
	if len(comp.SubComponents) == 0 {
		fmt.Fprintln(w, "Sub-components  (none)")
	} else {
		fmt.Fprintln(w, "Sub-components")
		names := sortedNames(comp.SubComponents)
		nameWidth := 0
		for _, n := range names {
			nameWidth = max(nameWidth, len(n))
		}
		for _, n := range names {
			fmt.Fprintf(w, "  %-*s  %s\n", nameWidth, n, comp.SubComponents[n].Description)
		}
	}

	fmt.Fprintln(w)
	if len(comp.Colors) == 0 {
		fmt.Fprintln(w, "Colors  (none)")
	} else {
		fmt.Fprintln(w, "Colors")
		printWrapped(w, strings.Join(comp.Colors, " "), 2, maxWidth)
	}

	if set != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Variants  %d\n", len(set.Variants))
		for _, v := range set.Variants {
			fmt.Fprintf(w, "  %s\n", v.Name)
		}
	}
}

// printPropsSection renders the props table with dynamic column widths.
func printPropsSection(w io.Writer, title string, comp *registry.Component) {
	names := comp.PropNames()
	if len(names) == 0 {
		fmt.Fprintf(w, "%s  (none)\n", title)
		return
	}
	fmt.Fprintln(w, title)

	nameW, typeW, defW := len("NAME"), len("TYPE"), len("DEFAULT")
	for _, n := range names {
		p := comp.Props[n]
		nameW = max(nameW, len(n))
		typeW = max(typeW, len(p.Type))
		defW = max(defW, len(orDash(p.Default)))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %-*s\n", nameW, "NAME", typeW, "TYPE", defW, "DEFAULT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", nameW+typeW+defW+4))

	for _, n := range names {
		p := comp.Props[n]
		fmt.Fprintf(w, "  %-*s  %-*s  %-*s\n", nameW, n, typeW, p.Type, defW, orDash(p.Default))
		if p.Description != "" {
			fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", nameW), p.Description)
		}
		for _, v := range p.Values {
			fmt.Fprintf(w, "  %s  %s: %s\n", strings.Repeat(" ", nameW), v, p.Classes[v])
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// printWrapped prints text word-wrapped at width with the given left indent.
func printWrapped(w io.Writer, text string, indent, width int) {
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range strings.Fields(text) {
		switch {
		case line == prefix:
			line += word
		case len(line)+len(word)+1 > width:
			fmt.Fprintln(w, line)
			line = prefix + word
		default:
			line += " " + word
		}
	}
	if line != prefix {
		fmt.Fprintln(w, line)
	}
}
