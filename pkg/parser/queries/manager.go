// Package queries compiles and runs the tree-sitter queries that locate
// class strings in TypeScript and JavaScript sources.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/figmagen/pkg/parser"
	"github.com/gnana997/figmagen/pkg/util"
)

// QueryManager compiles the class query once per grammar and caches it.
//
// Usage:
//
//	qm := NewQueryManager(logger)
//	defer qm.Close()
//
//	query, err := qm.GetQuery(parser.GrammarTSX)
//	if err != nil {
//	    return err
//	}
//	matches, err := qm.ExecuteQuery(tree, query, source)
type QueryManager struct {
	cache  map[parser.Grammar]*ts.Query
	mutex  sync.RWMutex
	logger *slog.Logger
}

// NewQueryManager creates a query manager. A nil logger uses slog.Default.
func NewQueryManager(logger *slog.Logger) *QueryManager {
	return &QueryManager{
		cache:  make(map[parser.Grammar]*ts.Query),
		logger: util.OrDefault(logger),
	}
}

// GetQuery returns the compiled class query for g, compiling it on first use.
func (qm *QueryManager) GetQuery(g parser.Grammar) (*ts.Query, error) {
	qm.mutex.RLock()
	query, exists := qm.cache[g]
	qm.mutex.RUnlock()
	if exists {
		return query, nil
	}

	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	if query, exists = qm.cache[g]; exists {
		return query, nil
	}

	src, err := ClassQuery(g)
	if err != nil {
		return nil, err
	}
	langPtr, err := parser.LanguagePointer(g)
	if err != nil {
		return nil, fmt.Errorf("failed to get language pointer for %s: %w", g, err)
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), src)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile class query for %s: %s", g, qerr.Message)
	}
	qm.cache[g] = query

	qm.logger.Debug("compiled query", "grammar", g.String())
	return query, nil
}

// ExecuteQuery runs a compiled query on a parse tree and returns its matches
// with capture text and locations.
func (qm *QueryManager) ExecuteQuery(tree *ts.Tree, query *ts.Query, source []byte) ([]QueryMatch, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	names := query.CaptureNames()

	var matches []QueryMatch
	for match := iter.Next(); match != nil; match = iter.Next() {
		captures := make([]QueryCapture, 0, len(match.Captures))
		for _, capture := range match.Captures {
			var name string
			if int(capture.Index) < len(names) {
				name = names[capture.Index]
			}
			category, field := parseCaptureName(name)
			node := capture.Node
			captures = append(captures, QueryCapture{
				Name:     name,
				Category: category,
				Field:    field,
				Node:     &node,
				Text:     node.Utf8Text(source),
				Location: nodeLocation(&node),
			})
		}
		matches = append(matches, QueryMatch{
			PatternIndex: uint32(match.PatternIndex),
			Captures:     captures,
		})
	}

	return matches, nil
}

// Close releases all compiled queries.
func (qm *QueryManager) Close() error {
	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	qm.logger.Debug("closing query manager", "queries_compiled", len(qm.cache))

	for key, query := range qm.cache {
		if query != nil {
			query.Close()
		}
		delete(qm.cache, key)
	}

	return nil
}

// QueryMatch represents a single pattern match from query execution.
type QueryMatch struct {
	// PatternIndex identifies which query pattern matched
	PatternIndex uint32

	// Captures contains all captured nodes for this match
	Captures []QueryCapture
}

// QueryCapture represents a single captured node from a query match.
type QueryCapture struct {
	// Name is the full capture name (e.g., "attr.name", "call.args")
	Name string

	// Category is the first part of the capture name (e.g., "attr", "call")
	Category string

	// Field is the second part of the capture name (e.g., "name", "args")
	// Empty string if capture name has no dot
	Field string

	// Node is the captured AST node
	Node *ts.Node

	// Text is the source code text of the captured node
	Text string

	// Location is the file location of the captured node
	Location Location
}

// Location represents a position in source code.
type Location struct {
	StartLine   uint32 // 1-based line number
	StartColumn uint32 // 1-based column number
	EndLine     uint32
	EndColumn   uint32
	StartByte   uint32 // 0-based byte offset
	EndByte     uint32
}

// parseCaptureName splits "attr.name" into ("attr", "name"); a name without a
// dot returns (name, "").
func parseCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

// nodeLocation extracts location information from a tree-sitter node.
//
// Converts tree-sitter's 0-based coordinates to 1-based line/column numbers
// for consistency with LSP and most editor APIs.
func nodeLocation(node *ts.Node) Location {
	start := node.StartPosition()
	end := node.EndPosition()

	return Location{
		StartLine:   uint32(start.Row + 1),    // Convert 0-based to 1-based
		StartColumn: uint32(start.Column + 1), // Convert 0-based to 1-based
		EndLine:     uint32(end.Row + 1),
		EndColumn:   uint32(end.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}
