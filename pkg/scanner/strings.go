package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// literal is a string literal found under a node.
type literal struct {
	node *ts.Node
	text string
}

// stringContent returns the text of a string or template literal without its
// quotes; template substitutions become spaces.
func stringContent(node *ts.Node, source []byte) (string, bool) {
	switch node.Kind() {
	case "string":
	case "template_string":
		start, end := node.StartByte()+1, node.EndByte()-1
		if end <= start {
			return "", true
		}
		var b strings.Builder
		pos := start
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() != "template_substitution" {
				continue
			}
			b.Write(source[pos:child.StartByte()])
			b.WriteByte(' ')
			pos = child.EndByte()
		}
		b.Write(source[pos:end])
		return b.String(), true
	default:
		return "", false
	}

	text := node.Utf8Text(source)
	if len(text) < 2 {
		return "", true
	}
	return text[1 : len(text)-1], true
}

// collectStrings gathers the class-like string literals under node. Nested
// calls are skipped (class helpers are matched on their own), as are the
// operands of equality tests and non-string object keys or values.
func collectStrings(node *ts.Node, source []byte) []literal {
	var out []literal
	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		if n == nil {
			return
		}
		switch n.Kind() {
		case "call_expression", "arrow_function", "function_expression":
			return
		case "binary_expression":
			if isComparison(n, source) {
				return
			}
		case "pair":
			// clsx({ "bg-kumo-brand": active }): the key is the class.
			if key := n.ChildByFieldName("key"); key != nil {
				walk(key)
			}
			return
		}
		if text, ok := stringContent(n, source); ok {
			if strings.TrimSpace(text) != "" {
				out = append(out, literal{node: n, text: text})
			}
			return
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(node)
	return out
}

func isComparison(n *ts.Node, source []byte) bool {
	op := n.ChildByFieldName("operator")
	if op == nil {
		return false
	}
	switch op.Utf8Text(source) {
	case "===", "!==", "==", "!=":
		return true
	}
	return false
}

// nthArgument returns the nth (0-based) argument of an arguments node.
func nthArgument(args *ts.Node, n int) *ts.Node {
	count := 0
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		if count == n {
			return child
		}
		count++
	}
	return nil
}

// objectPairs returns the key text and value node of each pair in an object
// literal. Quoted keys are unquoted.
func objectPairs(obj *ts.Node, source []byte) []objectPair {
	if obj == nil || obj.Kind() != "object" {
		return nil
	}
	var pairs []objectPair
	for i := uint(0); i < obj.NamedChildCount(); i++ {
		child := obj.NamedChild(i)
		if child.Kind() != "pair" {
			continue
		}
		key := child.ChildByFieldName("key")
		value := child.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		name := key.Utf8Text(source)
		if text, ok := stringContent(key, source); ok {
			name = text
		}
		pairs = append(pairs, objectPair{key: name, value: value})
	}
	return pairs
}

type objectPair struct {
	key   string
	value *ts.Node
}
