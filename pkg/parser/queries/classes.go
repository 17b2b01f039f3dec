package queries

import (
	"fmt"

	"github.com/gnana997/figmagen/pkg/parser"
)

// callQuery matches every plain function call; the extractor keeps the
// class helpers (cn, clsx, cva, twMerge, ...) by callee name.
const callQuery = `
(call_expression
  function: (identifier) @call.name
  arguments: (arguments) @call.args)
`

// jsxQuery matches JSX attributes with a value; the extractor keeps
// className and class.
const jsxQuery = `
(jsx_attribute
  (property_identifier) @attr.name
  (_) @attr.value)
`

// Pattern indexes into the compiled query.
const (
	PatternCall = 0
	PatternJSX  = 1
)

// ClassQuery returns the query source for g. Plain TypeScript has no JSX
// nodes, so its query only carries the call pattern.
func ClassQuery(g parser.Grammar) (string, error) {
	switch g {
	case parser.GrammarTypeScript:
		return callQuery, nil
	case parser.GrammarTSX, parser.GrammarJavaScript:
		return callQuery + jsxQuery, nil
	default:
		return "", fmt.Errorf("no class query for grammar %s", g)
	}
}
