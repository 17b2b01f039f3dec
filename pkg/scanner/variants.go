package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// variantHelpers take a variants config: cva(base, config) and
// tv({base, variants}).
var variantHelpers = map[string]bool{
	"cva": true,
	"tv":  true,
}

// extractVariantCall reads a cva() or tv() call. Base classes and
// compoundVariants classes come back without a variant; strings inside the
// variants block carry their variant key and value.
func (e *Extractor) extractVariantCall(call, args *ts.Node, callee string, source []byte, emit func(*ts.Node, string, classMeta)) {
	binding := bindingName(call, source)
	meta := classMeta{origin: OriginVariant, callee: callee, binding: binding}

	var config *ts.Node
	switch callee {
	case "cva":
		if base := nthArgument(args, 0); base != nil {
			for _, lit := range collectStrings(base, source) {
				emit(lit.node, lit.text, meta)
			}
		}
		config = nthArgument(args, 1)
	case "tv":
		config = nthArgument(args, 0)
	}

	for _, pair := range objectPairs(config, source) {
		switch pair.key {
		case "base":
			for _, lit := range collectStrings(pair.value, source) {
				emit(lit.node, lit.text, meta)
			}
		case "variants":
			for _, variant := range objectPairs(pair.value, source) {
				for _, value := range objectPairs(variant.value, source) {
					m := meta
					m.variant, m.value = variant.key, value.key
					for _, lit := range collectStrings(value.value, source) {
						emit(lit.node, lit.text, m)
					}
				}
			}
		case "compoundVariants":
			e.extractCompoundVariants(pair.value, source, meta, emit)
		}
	}
}

// extractCompoundVariants keeps only the class/className entries; the other
// keys are variant selectors, not classes.
func (e *Extractor) extractCompoundVariants(list *ts.Node, source []byte, meta classMeta, emit func(*ts.Node, string, classMeta)) {
	if list == nil || list.Kind() != "array" {
		return
	}
	for i := uint(0); i < list.NamedChildCount(); i++ {
		for _, pair := range objectPairs(list.NamedChild(i), source) {
			if pair.key != "class" && pair.key != "className" {
				continue
			}
			for _, lit := range collectStrings(pair.value, source) {
				emit(lit.node, lit.text, meta)
			}
		}
	}
}

// bindingName walks up from a call to the enclosing variable declarator,
// e.g. "buttonVariants" for const buttonVariants = cva(...).
func bindingName(call *ts.Node, source []byte) string {
	for node := call.Parent(); node != nil; node = node.Parent() {
		switch node.Kind() {
		case "variable_declarator":
			if name := node.ChildByFieldName("name"); name != nil {
				return name.Utf8Text(source)
			}
			return ""
		case "lexical_declaration", "variable_declaration", "export_statement", "program":
			return ""
		}
	}
	return ""
}
