package parser

import (
	"path/filepath"
	"strings"
)

// Grammar is the tree-sitter grammar a source file is parsed with. TSX is
// its own grammar: the TypeScript grammar cannot parse JSX.
type Grammar int

const (
	GrammarUnknown Grammar = iota
	GrammarTypeScript
	GrammarTSX
	GrammarJavaScript
)

func (g Grammar) String() string {
	switch g {
	case GrammarTypeScript:
		return "typescript"
	case GrammarTSX:
		return "tsx"
	case GrammarJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// GrammarForPath picks the grammar from the file extension. .js and .jsx
// share the JavaScript grammar, which accepts JSX.
func GrammarForPath(path string) Grammar {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript
	case ".tsx":
		return GrammarTSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return GrammarJavaScript
	default:
		return GrammarUnknown
	}
}

// ParseGrammar converts a name such as "tsx" or "js".
func ParseGrammar(name string) Grammar {
	switch strings.ToLower(name) {
	case "typescript", "ts":
		return GrammarTypeScript
	case "tsx":
		return GrammarTSX
	case "javascript", "js", "jsx":
		return GrammarJavaScript
	default:
		return GrammarUnknown
	}
}

// Grammars lists every supported grammar.
func Grammars() []Grammar {
	return []Grammar{GrammarTypeScript, GrammarTSX, GrammarJavaScript}
}

// SourceExtensions are the file extensions the scanner parses.
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}
