package scanner

import (
	"fmt"
	"log/slog"
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/figmagen/pkg/parser"
	"github.com/gnana997/figmagen/pkg/parser/queries"
	"github.com/gnana997/figmagen/pkg/util"
)

// ClassAttributes are the JSX attributes holding class strings.
var ClassAttributes = map[string]bool{
	"className": true,
	"class":     true,
}

// ClassHelpers are the functions whose string arguments are class strings.
var ClassHelpers = map[string]bool{
	"cn":         true,
	"clsx":       true,
	"cx":         true,
	"classNames": true,
	"twMerge":    true,
	"twJoin":     true,
	"cva":        true,
	"tv":         true,
}

// Extractor pulls class strings out of parse trees.
type Extractor struct {
	pm     *parser.ParserManager
	qm     *queries.QueryManager
	logger *slog.Logger
}

// NewExtractor creates an extractor over shared parser and query managers.
func NewExtractor(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Extractor {
	return &Extractor{pm: pm, qm: qm, logger: util.OrDefault(logger)}
}

type classMeta struct {
	origin  Origin
	callee  string
	binding string
	variant string
	value   string
}

// FileExtraction is everything extracted from one file.
type FileExtraction struct {
	Sources []ClassSource
	Usages  []ComponentUsage
}

// Extract parses source with the grammar for path and extracts its class
// strings and component usages.
func (e *Extractor) Extract(path string, source []byte) (*FileExtraction, error) {
	g := parser.GrammarForPath(path)
	tree, err := e.pm.Parse(source, g)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	found, err := e.ExtractClassStrings(tree, source, g)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	for i := range found {
		found[i].File = path
	}
	usages := ExtractUsages(tree, source)
	for i := range usages {
		usages[i].File = path
	}
	return &FileExtraction{Sources: found, Usages: usages}, nil
}

// ExtractFile is Extract without the component usages.
func (e *Extractor) ExtractFile(path string, source []byte) ([]ClassSource, error) {
	fx, err := e.Extract(path, source)
	if err != nil {
		return nil, err
	}
	return fx.Sources, nil
}

// ExtractClassStrings returns the class strings in tree, ordered by position.
// A literal is reported once even when it sits under several matches.
func (e *Extractor) ExtractClassStrings(tree *ts.Tree, source []byte, g parser.Grammar) ([]ClassSource, error) {
	query, err := e.qm.GetQuery(g)
	if err != nil {
		return nil, err
	}
	matches, err := e.qm.ExecuteQuery(tree, query, source)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var out []ClassSource
	emit := func(node *ts.Node, text string, meta classMeta) {
		if seen[node.StartByte()] {
			return
		}
		seen[node.StartByte()] = true
		pos := node.StartPosition()
		out = append(out, ClassSource{
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Classes: text,
			Origin:  meta.origin,
			Callee:  meta.callee,
			Binding: meta.binding,
			Variant: meta.variant,
			Value:   meta.value,
		})
	}

	// Variant helpers go first so their literals keep variant metadata.
	sort.SliceStable(matches, func(i, j int) bool {
		return variantMatch(matches[i]) && !variantMatch(matches[j])
	})

	for _, m := range matches {
		name, value := captures(m)
		if name == nil || value == nil {
			continue
		}
		switch int(m.PatternIndex) {
		case queries.PatternCall:
			if !ClassHelpers[name.Text] {
				continue
			}
			if variantHelpers[name.Text] {
				e.extractVariantCall(value.Node.Parent(), value.Node, name.Text, source, emit)
				continue
			}
			meta := classMeta{origin: OriginCall, callee: name.Text}
			for _, lit := range collectStrings(value.Node, source) {
				emit(lit.node, lit.text, meta)
			}
		case queries.PatternJSX:
			if !ClassAttributes[name.Text] {
				continue
			}
			meta := classMeta{origin: OriginAttribute, callee: name.Text}
			for _, lit := range collectStrings(value.Node, source) {
				emit(lit.node, lit.text, meta)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out, nil
}

// captures returns the name and value captures of a match.
func captures(m queries.QueryMatch) (name, value *queries.QueryCapture) {
	for i := range m.Captures {
		switch m.Captures[i].Field {
		case "name":
			name = &m.Captures[i]
		case "args", "value":
			value = &m.Captures[i]
		}
	}
	return name, value
}

func variantMatch(m queries.QueryMatch) bool {
	if int(m.PatternIndex) != queries.PatternCall {
		return false
	}
	name, _ := captures(m)
	return name != nil && variantHelpers[name.Text]
}
