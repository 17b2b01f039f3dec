// Package parser wraps tree-sitter with per-grammar parser pools.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/figmagen/pkg/util"
)

// ParserManager hands out pooled tree-sitter parsers. Pools are created on
// first use per grammar.
//
// Callers own the returned trees and must Close them; the manager itself
// must be closed via Close.
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.ParseFile(source, "src/button.tsx")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools    map[Grammar]*parserPool
	poolSize int
	mutex    sync.RWMutex
	logger   *slog.Logger

	parses int
}

// NewParserManager creates a manager sized from the CPU count.
func NewParserManager(logger *slog.Logger) *ParserManager {
	return NewParserManagerWithSize(logger, 0)
}

// NewParserManagerWithSize creates a manager with poolSize parsers per
// grammar; 0 selects the CPU-based default. The scanner passes its worker
// count so workers never wait on a parser.
func NewParserManagerWithSize(logger *slog.Logger, poolSize int) *ParserManager {
	return &ParserManager{
		pools:    make(map[Grammar]*parserPool),
		poolSize: util.Workers(poolSize),
		logger:   util.OrDefault(logger),
	}
}

// Parse parses source with grammar g. Trees with syntax errors are still
// returned; partial trees are useful for extraction.
func (pm *ParserManager) Parse(source []byte, g Grammar) (*ts.Tree, error) {
	if g == GrammarUnknown {
		return nil, fmt.Errorf("cannot parse unknown grammar")
	}

	pm.mutex.Lock()
	pm.parses++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(g)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", g, err)
	}

	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	if tree.RootNode().HasError() {
		pm.logger.Debug("parse tree contains errors", "grammar", g.String())
	}
	return tree, nil
}

// ParseFile parses source with the grammar chosen by filePath's extension.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	g := GrammarForPath(filePath)
	if g == GrammarUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(source, g)
}

// Close releases every pooled parser. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing parser manager", "parses", pm.parses)
	for _, pool := range pm.pools {
		pool.close()
	}
	pm.pools = make(map[Grammar]*parserPool)
	return nil
}

func (pm *ParserManager) getOrCreatePool(g Grammar) (*parserPool, error) {
	pm.mutex.RLock()
	pool, exists := pm.pools[g]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	// Another goroutine may have created it.
	if pool, exists = pm.pools[g]; exists {
		return pool, nil
	}

	langPtr, err := LanguagePointer(g)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(g, langPtr, pm.poolSize, pm.logger)
	pm.pools[g] = pool

	pm.logger.Debug("created parser pool", "grammar", g.String(), "maxSize", pm.poolSize)
	return pool, nil
}

// LanguagePointer returns the tree-sitter grammar for g. Query compilation
// uses it too.
func LanguagePointer(g Grammar) (unsafe.Pointer, error) {
	switch g {
	case GrammarTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case GrammarTSX:
		return ts_typescript.LanguageTSX(), nil
	case GrammarJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported grammar: %s", g)
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.getCreatedCount()
	}
	return ParserStats{ParsersCreated: created, ParsesCalled: pm.parses}
}
