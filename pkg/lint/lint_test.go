package lint

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/scanner"
	"github.com/gnana997/figmagen/pkg/tokens"
)

func newTestLinter() *Linter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLinter(tokens.LoadEmbedded(tokens.ParseOptions{}), logger)
}

// --- LintClasses ---

func TestLintClasses_SemanticTokensPass(t *testing.T) {
	vs := newTestLinter().LintClasses("x", "h-9 px-3 bg-kumo-brand hover:bg-kumo-brand-hover text-kumo-default ring-kumo-ring/50 border-kumo-line text-white bg-transparent text-sm")
	assert.Empty(t, vs)
}

func TestLintClasses_TextUtilityAcceptsFillToken(t *testing.T) {
	assert.Empty(t, newTestLinter().LintClasses("x", "text-kumo-brand"))
}

func TestLintClasses_UnknownToken(t *testing.T) {
	vs := newTestLinter().LintClasses("Button.variant=primary", "bg-kumo-nope text-kumo-strong")
	require.Len(t, vs, 1)
	v := vs[0]
	assert.Equal(t, RuleUnknownToken, v.Rule)
	assert.Equal(t, SeverityError, v.Severity)
	assert.Equal(t, "kumo-nope", v.Token)
	assert.Equal(t, "bg-kumo-nope", v.Class)
	assert.Equal(t, "Button.variant=primary", v.Source)
}

func TestLintClasses_TextTokenUsedAsFill(t *testing.T) {
	vs := newTestLinter().LintClasses("x", "bg-kumo-subtle")
	require.Len(t, vs, 1)
	assert.Equal(t, RuleUnknownToken, vs[0].Rule)
	assert.Contains(t, vs[0].Message, "is a text colour")
}

func TestLintClasses_PrimitiveColors(t *testing.T) {
	vs := newTestLinter().LintClasses("x", "bg-blue-600 text-rose-500 border-[#ff0000]")
	require.Len(t, vs, 3)
	for _, v := range vs {
		assert.Equal(t, RulePrimitiveColor, v.Rule)
		assert.Equal(t, SeverityWarning, v.Severity)
	}
	assert.Equal(t, "blue-600", vs[0].Token)
	assert.Contains(t, vs[0].Message, "global token")
	assert.Equal(t, "rose-500", vs[1].Token)
	assert.Contains(t, vs[1].Message, "palette colour")
	assert.Equal(t, "#ff0000", vs[2].Token)
}

// --- LintRegistry ---

func TestLintRegistry(t *testing.T) {
	reg := &registry.Registry{
		Version: "1.0",
		Components: map[string]registry.Component{
			"Button": {
				Name:     "Button",
				Category: "Action",
				Props: map[string]registry.Prop{
					"variant": {
						Type:    registry.PropTypeEnum,
						Values:  []string{"primary", "secondary"},
						Classes: map[string]string{"primary": "bg-kumo-brand", "secondary": "bg-neutral-100"},
					},
				},
				Colors: []string{"kumo-brand", "kumo-missing"},
			},
		},
	}

	vs := newTestLinter().LintRegistry(reg)
	require.Len(t, vs, 2)
	assert.Equal(t, "Button.variant=secondary", vs[0].Source)
	assert.Equal(t, RulePrimitiveColor, vs[0].Rule)
	assert.Equal(t, "Button.colors", vs[1].Source)
	assert.Equal(t, "kumo-missing", vs[1].Token)
}

func TestLintRegistry_SubComponentClasses(t *testing.T) {
	reg := &registry.Registry{
		Version: "1.0",
		Components: map[string]registry.Component{
			"Tabs": {
				Name:     "Tabs",
				Category: "Navigation",
				SubComponents: map[string]registry.SubComponent{
					"Tabs.Tab": {
						Name: "Tabs.Tab",
						Props: map[string]registry.Prop{
							"state": {
								Type:    registry.PropTypeEnum,
								Values:  []string{"active", "idle"},
								Classes: map[string]string{"active": "bg-kumo-nope", "idle": "bg-kumo-base"},
							},
						},
					},
				},
			},
		},
	}

	vs := newTestLinter().LintRegistry(reg)
	require.Len(t, vs, 1)
	assert.Equal(t, RuleUnknownToken, vs[0].Rule)
	assert.Equal(t, "Tabs.Tab.state=active", vs[0].Source)
}

// --- LintSources ---

func TestLintSources(t *testing.T) {
	sources := []scanner.ClassSource{
		{File: "src/card.tsx", Line: 12, Classes: "bg-kumo-base text-kumo-bogus"},
		{File: "src/nav.tsx", Line: 3, Classes: "p-4"},
	}
	vs := newTestLinter().LintSources(sources)
	require.Len(t, vs, 1)
	assert.Equal(t, "src/card.tsx", vs[0].File)
	assert.Equal(t, 12, vs[0].Line)
	assert.Equal(t, "src/card.tsx:12", vs[0].Source)
	assert.Equal(t, "kumo-bogus", vs[0].Token)
}

// --- LintUsages ---

func TestLintUsages(t *testing.T) {
	reg := &registry.Registry{
		Version: "1.0",
		Components: map[string]registry.Component{
			"Button": {
				Name:     "Button",
				Category: "Action",
				Props: map[string]registry.Prop{
					"variant": {Type: registry.PropTypeEnum, Values: []string{"primary", "ghost"}},
					"size":    {Type: registry.PropTypeEnum, Values: []string{"sm", "base"}},
					"label":   {Type: "string"},
				},
			},
		},
	}
	usages := []scanner.ComponentUsage{
		{File: "a.tsx", Line: 4, Component: "Button", Props: map[string]string{
			"variant": "danger", "size": "", "label": "anything", "onClick": "",
		}},
		{File: "a.tsx", Line: 9, Component: "Button", Props: map[string]string{"variant": "ghost", "size": "xl"}},
		{File: "b.tsx", Line: 1, Component: "Carousel", Props: map[string]string{"variant": "x"}},
	}

	vs := LintUsages(reg, usages)
	require.Len(t, vs, 2)
	assert.Equal(t, RuleUnknownPropValue, vs[0].Rule)
	assert.Equal(t, SeverityError, vs[0].Severity)
	assert.Equal(t, "a.tsx:4", vs[0].Source)
	assert.Equal(t, "danger", vs[0].Token)
	assert.Equal(t, `variant="danger"`, vs[0].Class)
	assert.Contains(t, vs[0].Message, "primary, ghost")

	assert.Equal(t, 9, vs[1].Line)
	assert.Equal(t, "xl", vs[1].Token)
}

// --- Summarize ---

func TestSummarize(t *testing.T) {
	vs := newTestLinter().LintClasses("x", "bg-kumo-nope bg-red-500 text-red-500")
	r := Summarize(vs)
	assert.Equal(t, 1, r.Errors)
	assert.Equal(t, 2, r.Warnings)
	assert.Equal(t, 2, r.ByRule[RulePrimitiveColor])
	assert.Equal(t, []string{"kumo-nope", "red-500"}, r.Tokens())
	assert.True(t, r.Failed(false))

	clean := Summarize(nil)
	assert.NotNil(t, clean.Violations)
	assert.False(t, clean.Failed(true))

	warnOnly := Summarize(newTestLinter().LintClasses("x", "bg-red-500"))
	assert.False(t, warnOnly.Failed(false))
	assert.True(t, warnOnly.Failed(true))
}
