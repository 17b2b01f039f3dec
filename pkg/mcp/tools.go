package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type toolEntry struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// tools lists every tool in registration order.
func (s *Server) tools() []toolEntry {
	return []toolEntry{
		{listComponentsTool(), s.handleListComponents},
		{searchComponentsTool(), s.handleSearchComponents},
		{getComponentTool(), s.handleGetComponent},
		{generateComponentTool(), s.handleGenerateComponent},
		{parseClassesTool(), s.handleParseClasses},
		{getTokensTool(), s.handleGetTokens},
		{extractOpacityTool(), s.handleExtractOpacity},
		{lintClassesTool(), s.handleLintClasses},
		{colorUsageTool(), s.handleColorUsage},
	}
}

// ToolNames returns the registered tool names in order.
func (s *Server) ToolNames() []string {
	entries := s.tools()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.tool.Name
	}
	return names
}

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List registry components, optionally filtered by category and keyword"),
		mcp.WithString("category", mcp.Description("Category name, case-insensitive")),
		mcp.WithString("keyword", mcp.Description("Substring of the name or description")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool("search_components",
		mcp.WithDescription("Search component names, descriptions, props and sub-components"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getComponentTool() mcp.Tool {
	return mcp.NewTool("get_component",
		mcp.WithDescription("Full registry entry of a component; sub-component names resolve to their parent"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Component name, e.g. Button or Dialog.Title")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func generateComponentTool() mcp.Tool {
	return mcp.NewTool("generate_component",
		mcp.WithDescription("Generate the component set (variants and layer trees) for one component"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Component name, e.g. Button")),
		mcp.WithObject("options", mcp.Description("Option overrides such as {\"label\": \"Storage\"}")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func parseClassesTool() mcp.Tool {
	return mcp.NewTool("parse_classes",
		mcp.WithDescription("Parse a Tailwind class string into geometry and colour variables"),
		mcp.WithString("classes", mcp.Required(), mcp.Description("Space-separated utility classes")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func getTokensTool() mcp.Tool {
	return mcp.NewTool("get_tokens",
		mcp.WithDescription("Semantic colour tokens with resolved light and dark values"),
		mcp.WithString("kind", mcp.Description("color or text-color; empty for both"), mcp.Enum("color", "text-color")),
		mcp.WithString("theme", mcp.Description("Theme name for [data-theme] overrides")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func extractOpacityTool() mcp.Tool {
	return mcp.NewTool("extract_opacity",
		mcp.WithDescription("Opacity modifiers such as bg-kumo-brand/70; without classes, those of the whole project"),
		mcp.WithString("classes", mcp.Description("Class string to scan")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func lintClassesTool() mcp.Tool {
	return mcp.NewTool("lint_classes",
		mcp.WithDescription("Report colour classes that use unknown or primitive tokens; without classes, lint the project"),
		mcp.WithString("classes", mcp.Description("Class string to check")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func colorUsageTool() mcp.Tool {
	return mcp.NewTool("color_usage",
		mcp.WithDescription("Map each declared colour token to the components using it"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
