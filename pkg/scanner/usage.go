package scanner

import (
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ComponentUsage is one JSX element whose tag names a component
// (capitalised), with its literal prop values.
type ComponentUsage struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Component string `json:"component"`

	// Props maps prop name to its string literal value. Expression values
	// are "" and boolean shorthand (<Button disabled>) is "true".
	Props map[string]string `json:"props"`

	// Parent is the nearest enclosing component, "" at the top level.
	Parent string `json:"parent,omitempty"`
}

// ExtractUsages walks tree for component elements in document order.
func ExtractUsages(tree *ts.Tree, source []byte) []ComponentUsage {
	var (
		out     []ComponentUsage
		parents []string
	)

	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		switch n.Kind() {
		case "jsx_element":
			var tag string
			for i := uint(0); i < n.ChildCount(); i++ {
				if open := n.Child(i); open.Kind() == "jsx_opening_element" {
					tag = usageFrom(open, source, parents, &out)
					break
				}
			}
			if isComponentName(tag) {
				parents = append(parents, tag)
			}
			for i := uint(0); i < n.ChildCount(); i++ {
				child := n.Child(i)
				if k := child.Kind(); k != "jsx_opening_element" && k != "jsx_closing_element" {
					walk(child)
				}
			}
			if isComponentName(tag) {
				parents = parents[:len(parents)-1]
			}
			return
		case "jsx_self_closing_element":
			usageFrom(n, source, parents, &out)
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
	return out
}

// usageFrom records the element opened by node when it is a component and
// returns its tag name.
func usageFrom(node *ts.Node, source []byte, parents []string, out *[]ComponentUsage) string {
	var tag string
	props := make(map[string]string)

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "member_expression", "nested_identifier":
			if tag == "" {
				tag = child.Utf8Text(source)
			}
		case "jsx_attribute":
			if name, value, ok := attribute(child, source); ok {
				props[name] = value
			}
		}
	}

	if isComponentName(tag) {
		parent := ""
		if len(parents) > 0 {
			parent = parents[len(parents)-1]
		}
		pos := node.StartPosition()
		*out = append(*out, ComponentUsage{
			Line:      int(pos.Row) + 1,
			Column:    int(pos.Column) + 1,
			Component: tag,
			Props:     props,
			Parent:    parent,
		})
	}
	return tag
}

func attribute(node *ts.Node, source []byte) (name, value string, ok bool) {
	hasValue := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_identifier":
			name = child.Utf8Text(source)
		case "string":
			value, _ = stringContent(child, source)
			hasValue = true
		case "jsx_expression":
			hasValue = true
		}
	}
	if name == "" {
		return "", "", false
	}
	if !hasValue {
		value = "true"
	}
	return name, value, true
}

func isComponentName(tag string) bool {
	return tag != "" && unicode.IsUpper(rune(tag[0]))
}
