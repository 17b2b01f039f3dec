// Package lint reports colour utilities that bypass the semantic token set,
// and component usages whose enum props name values the registry does not
// declare. Violations are reported, never auto-corrected.
package lint

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/scanner"
	"github.com/gnana997/figmagen/pkg/tailwind"
	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
)

// Rule names.
const (
	RuleUnknownToken     = "unknown-color-token"
	RulePrimitiveColor   = "primitive-color"
	RuleUnknownPropValue = "unknown-prop-value"
)

// Severity of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is one offending class.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Token    string   `json:"token"`
	Class    string   `json:"class,omitempty"`
	Source   string   `json:"source"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s [%s] %s", v.Source, v.Severity, v.Rule, v.Message)
}

// Linter checks classes against a token table.
type Linter struct {
	tokens *tokens.Table
	logger *slog.Logger
}

// NewLinter creates a linter over table.
func NewLinter(table *tokens.Table, logger *slog.Logger) *Linter {
	return &Linter{tokens: table, logger: util.OrDefault(logger)}
}

// LintClasses checks every colour utility in classes. source labels the
// violations, e.g. "Button.variant=primary" or "src/card.tsx:12".
func (l *Linter) LintClasses(source, classes string) []Violation {
	var out []Violation
	for _, class := range strings.Fields(classes) {
		cc, ok := tailwind.SplitColorClass(class)
		if !ok {
			continue
		}
		if v, bad := l.check(cc); bad {
			v.Class = class
			v.Source = source
			out = append(out, v)
		}
	}
	return out
}

func (l *Linter) check(cc tailwind.ColorClass) (Violation, bool) {
	tok := cc.Token
	switch {
	case tailwind.IsBuiltinColor(tok):
		return Violation{}, false
	case cc.Arbitrary:
		return primitive(tok, fmt.Sprintf("arbitrary colour %q bypasses the semantic tokens", tok)), true
	case l.tokens.HasColor(tok), cc.IsText() && l.tokens.HasTextColor(tok):
		return Violation{}, false
	case l.tokens.IsGlobal(tok):
		return primitive(tok, fmt.Sprintf("global token %q used directly; use a %s token", tok, l.tokens.SemanticPrefix())), true
	case tailwind.IsPaletteColor(tok):
		return primitive(tok, fmt.Sprintf("palette colour %q used directly; use a %s token", tok, l.tokens.SemanticPrefix())), true
	}
	return Violation{
		Rule:     RuleUnknownToken,
		Severity: SeverityError,
		Token:    tok,
		Message:  unknownMessage(tok, cc, l.tokens),
	}, true
}

func primitive(tok, msg string) Violation {
	return Violation{Rule: RulePrimitiveColor, Severity: SeverityWarning, Token: tok, Message: msg}
}

func unknownMessage(tok string, cc tailwind.ColorClass, table *tokens.Table) string {
	msg := fmt.Sprintf("%s-%s does not resolve to a defined token", cc.Utility, tok)
	// A text-only token used for a fill is a common slip.
	if !cc.IsText() && table.HasTextColor(tok) {
		msg += fmt.Sprintf(" (%q is a text colour)", tok)
	}
	return msg
}

// LintRegistry checks every enum class string, sub-components included, then
// every declared colour of every component, in name order.
func (l *Linter) LintRegistry(reg *registry.Registry) []Violation {
	var out []Violation
	for _, ec := range reg.EnumClasses() {
		source := fmt.Sprintf("%s.%s=%s", ec.Owner, ec.Prop, ec.Value)
		out = append(out, l.LintClasses(source, ec.Classes)...)
	}
	for _, key := range reg.SortedKeys() {
		comp := reg.Components[key]
		for _, tok := range comp.Colors {
			if l.tokens.HasColor(tok) || l.tokens.HasTextColor(tok) {
				continue
			}
			out = append(out, Violation{
				Rule:     RuleUnknownToken,
				Severity: SeverityError,
				Token:    tok,
				Source:   comp.Name + ".colors",
				Message:  fmt.Sprintf("declared colour %q is not a semantic token", tok),
			})
		}
	}
	return out
}

// LintSources checks scanned class strings.
func (l *Linter) LintSources(sources []scanner.ClassSource) []Violation {
	var out []Violation
	for _, src := range sources {
		for _, v := range l.LintClasses(fmt.Sprintf("%s:%d", src.File, src.Line), src.Classes) {
			v.File, v.Line = src.File, src.Line
			out = append(out, v)
		}
	}
	return out
}

// Report summarises a lint run.
type Report struct {
	Violations []Violation    `json:"violations"`
	Errors     int            `json:"errors"`
	Warnings   int            `json:"warnings"`
	ByRule     map[string]int `json:"byRule"`
}

// Summarize counts violations by severity and rule.
func Summarize(vs []Violation) Report {
	r := Report{Violations: vs, ByRule: make(map[string]int)}
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
	for _, v := range vs {
		switch v.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		}
		r.ByRule[v.Rule]++
	}
	return r
}

// Failed reports whether the run should fail: any error, or any warning when
// strict.
func (r Report) Failed(strict bool) bool {
	return r.Errors > 0 || (strict && r.Warnings > 0)
}

// Tokens returns the distinct offending tokens, sorted.
func (r Report) Tokens() []string {
	seen := make(map[string]bool)
	for _, v := range r.Violations {
		seen[v.Token] = true
	}
	out := make([]string, 0, len(seen))
	for tok := range seen {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// LintUsages checks the literal enum prop values of scanned component
// usages. Components missing from the registry, non-enum props and
// expression values are skipped.
func LintUsages(reg *registry.Registry, usages []scanner.ComponentUsage) []Violation {
	idx := reg.Index()
	var out []Violation
	for _, u := range usages {
		comp, ok := idx.ComponentByKey[u.Component]
		if !ok {
			continue
		}
		names := make([]string, 0, len(u.Props))
		for name := range u.Props {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value := u.Props[name]
			prop, ok := comp.Props[name]
			if !ok || !prop.IsEnum() || value == "" || prop.HasValue(value) {
				continue
			}
			out = append(out, Violation{
				Rule:     RuleUnknownPropValue,
				Severity: SeverityError,
				Token:    value,
				Class:    fmt.Sprintf("%s=%q", name, value),
				Source:   fmt.Sprintf("%s:%d", u.File, u.Line),
				File:     u.File,
				Line:     u.Line,
				Message: fmt.Sprintf("%s %s %q is not one of %s",
					u.Component, name, value, strings.Join(prop.Values, ", ")),
			})
		}
	}
	return out
}
