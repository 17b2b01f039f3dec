package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/figmagen/pkg/figma"
	"github.com/gnana997/figmagen/pkg/generator"
	"github.com/gnana997/figmagen/pkg/lint"
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/tokens"
)

// --- response shapes ---

type componentSummary struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Props       []string `json:"props,omitempty"`
}

type searchResult struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	MatchReason string `json:"match_reason"`
}

type tokenInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Variable string `json:"variable"`
	Light    string `json:"light"`
	Dark     string `json:"dark"`
	Theme    string `json:"theme,omitempty"`
	Error    string `json:"error,omitempty"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func summarize(c registry.Component) componentSummary {
	return componentSummary{
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Props:       c.PropNames(),
	}
}

// --- registry tools ---

func (s *Server) handleListComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	qs := registry.NewQueryService(s.pipeline.State().Registry)
	comps := qs.ListComponents(req.GetString("category", ""), req.GetString("keyword", ""))
	out := make([]componentSummary, 0, len(comps))
	for _, c := range comps {
		out = append(out, summarize(c))
	}
	return jsonResult(out)
}

func (s *Server) handleSearchComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	qs := registry.NewQueryService(s.pipeline.State().Registry)
	results := qs.SearchComponents(query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no components found matching %q", query)), nil
	}
	out := make([]searchResult, 0, len(results))
	for _, r := range results {
		out = append(out, searchResult{Name: r.Component.Name, Category: r.Component.Category, MatchReason: r.MatchReason})
	}
	return jsonResult(out)
}

func (s *Server) handleGetComponent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	qs := registry.NewQueryService(s.pipeline.State().Registry)
	comp, ok := qs.GetComponent(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("component %q not found", name)), nil
	}
	return jsonResult(comp)
}

func (s *Server) handleColorUsage(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	qs := registry.NewQueryService(s.pipeline.State().Registry)
	return jsonResult(qs.ColorUsage())
}

// --- generation tools ---

func (s *Server) handleGenerateComponent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, ok := registry.ParseComponentName(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown component %q", raw)), nil
	}

	opts := generator.Options{}
	if m, ok := req.GetArguments()["options"].(map[string]any); ok {
		for k, v := range m {
			opts[k] = fmt.Sprint(v)
		}
	}

	set, err := generator.Generate(s.pipeline.State().Gen, name, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(set)
}

func (s *Server) handleParseClasses(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classes, err := req.RequireString("classes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.pipeline.State().Gen.Parser.Parse(classes))
}

// --- token tools ---

func (s *Server) handleGetTokens(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("kind", "")
	theme := req.GetString("theme", "")
	table := s.pipeline.State().Tokens

	if theme != "" && !slices.Contains(table.Themes(), theme) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown theme %q (have %s)", theme, strings.Join(table.Themes(), ", "))), nil
	}

	var out []tokenInfo
	for _, tok := range table.Semantic() {
		if kind != "" && string(tok.Kind) != kind {
			continue
		}
		info := tokenInfo{Name: tok.Name, Kind: string(tok.Kind), Variable: tok.VariableName(), Theme: theme}
		light, dark, err := table.ResolveToken(tok.Kind, tok.Name, theme)
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Light = figma.FromRGBA(light).Hex()
			info.Dark = figma.FromRGBA(dark).Hex()
		}
		out = append(out, info)
	}
	if out == nil {
		out = []tokenInfo{}
	}
	return jsonResult(out)
}

func (s *Server) handleExtractOpacity(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classes := req.GetString("classes", "")
	var mods []tokens.OpacityModifier
	if classes == "" {
		mods = s.pipeline.State().OpacityModifiers()
	} else {
		mods = tokens.ExtractOpacityModifiers(classes)
	}
	if mods == nil {
		mods = []tokens.OpacityModifier{}
	}
	return jsonResult(mods)
}

func (s *Server) handleLintClasses(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.pipeline.State()
	classes := req.GetString("classes", "")
	if classes == "" {
		return jsonResult(s.pipeline.Lint(st))
	}
	l := lint.NewLinter(st.Tokens, s.pipeline.Logger())
	return jsonResult(lint.Summarize(l.LintClasses("input", classes)))
}
