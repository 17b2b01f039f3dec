// Package pipeline wires config, registry, theme tokens, source scanning,
// generators and lint into the build steps the CLI, the MCP server and the
// watcher share.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gnana997/figmagen/pkg/config"
	"github.com/gnana997/figmagen/pkg/figma"
	"github.com/gnana997/figmagen/pkg/generator"
	"github.com/gnana997/figmagen/pkg/lint"
	"github.com/gnana997/figmagen/pkg/registry"
	"github.com/gnana997/figmagen/pkg/scanner"
	"github.com/gnana997/figmagen/pkg/tokens"
	"github.com/gnana997/figmagen/pkg/util"
)

// VariablesFileName is written to the output directory by BuildVariables.
const VariablesFileName = "figma-variables.json"

// State is one loaded snapshot. It is never mutated after Reload returns it,
// so readers can keep using a State while the next one loads.
type State struct {
	Registry *registry.Registry
	Tokens   *tokens.Table
	Gen      *generator.Context
	Sources  []scanner.ClassSource
	Usages   []scanner.ComponentUsage

	// ThemeFiles are the stylesheets the token table was built from; empty
	// for the embedded theme.
	ThemeFiles []string
}

// Pipeline holds the current State and the resources used to rebuild it.
type Pipeline struct {
	cfg     *config.Config
	log     *slog.Logger
	cache   util.FileCache
	scanner *scanner.Scanner

	mu    sync.RWMutex
	state *State
}

// New loads everything cfg names. With no registry or theme configured the
// embedded kumo files are used.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.CheckInputs(); err != nil {
		return nil, fmt.Errorf("missing inputs: %w", err)
	}
	logger = util.OrDefault(logger)

	cacheCfg := util.DefaultFileCacheConfig()
	cacheCfg.Logger = logger
	p := &Pipeline{
		cfg:   cfg,
		log:   logger,
		cache: util.NewFileCache(cacheCfg),
	}
	if len(cfg.Sources) > 0 {
		p.scanner = scanner.NewScanner(logger, scanner.Options{Cache: p.cache})
	}

	if _, err := p.Reload(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Logger returns the pipeline logger.
func (p *Pipeline) Logger() *slog.Logger {
	return p.log
}

// State returns the current snapshot.
func (p *Pipeline) State() *State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Reload re-reads the registry and theme files and rescans every source
// root. On error the previous State stays current.
func (p *Pipeline) Reload() (*State, error) {
	reg, err := p.loadRegistry()
	if err != nil {
		return nil, err
	}
	table, themeFiles, err := p.loadTokens()
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewContext(reg, table, generator.ContextOptions{
		Strict:    p.cfg.Strict,
		CacheSize: p.cfg.ParsedClasses,
		Logger:    p.log,
	})
	if err != nil {
		return nil, err
	}
	scanned, err := p.scanAll()
	if err != nil {
		return nil, err
	}

	st := &State{
		Registry:   reg,
		Tokens:     table,
		Gen:        gen,
		Sources:    scanned.Sources,
		Usages:     scanned.Usages,
		ThemeFiles: themeFiles,
	}
	p.mu.Lock()
	p.state = st
	p.mu.Unlock()

	p.log.Info("project loaded",
		"components", len(reg.Components),
		"semantic_tokens", len(table.Semantic()),
		"themes", len(table.Themes()),
		"class_strings", len(st.Sources),
		"usages", len(st.Usages))
	return st, nil
}

// Rescan re-extracts the given source files and replaces their class
// strings and usages in a new State. Files that no longer exist are dropped.
func (p *Pipeline) Rescan(files []string) (*State, error) {
	if p.scanner == nil {
		return p.State(), nil
	}
	changed := make(map[string]bool, len(files))
	var present []string
	for _, f := range files {
		changed[f] = true
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}

	fresh, err := p.scanner.ScanFiles(present)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.state
	sources := make([]scanner.ClassSource, 0, len(old.Sources)+len(fresh.Sources))
	for _, src := range old.Sources {
		if !changed[src.File] {
			sources = append(sources, src)
		}
	}
	sources = append(sources, fresh.Sources...)
	scanner.SortSources(sources)

	usages := make([]scanner.ComponentUsage, 0, len(old.Usages)+len(fresh.Usages))
	for _, u := range old.Usages {
		if !changed[u.File] {
			usages = append(usages, u)
		}
	}
	usages = append(usages, fresh.Usages...)
	scanner.SortUsages(usages)

	next := *old
	next.Sources = sources
	next.Usages = usages
	p.state = &next
	p.log.Debug("rescanned sources", "files", len(files), "class_strings", len(sources), "usages", len(usages))
	return &next, nil
}

// IsInput reports whether path is the registry or a theme file of the
// current State, i.e. a change that needs a full Reload.
func (p *Pipeline) IsInput(path string) bool {
	path = absPath(path)
	if p.cfg.Registry != "" && path == absPath(p.cfg.Registry) {
		return true
	}
	return slices.Contains(p.State().ThemeFiles, path)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (p *Pipeline) loadRegistry() (*registry.Registry, error) {
	if p.cfg.Registry == "" {
		p.log.Debug("using embedded registry")
		return generator.BuiltinRegistry()
	}
	reg, err := registry.LoadFromFile(p.cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", p.cfg.Registry, err)
	}
	return reg, nil
}

func (p *Pipeline) loadTokens() (*tokens.Table, []string, error) {
	opts := tokens.ParseOptions{SemanticPrefix: p.cfg.SemanticPrefix, Cache: p.cache}
	if len(p.cfg.Theme) == 0 {
		p.log.Debug("using embedded theme")
		return tokens.LoadEmbedded(opts), nil, nil
	}

	var files []string
	for _, entry := range p.cfg.Theme {
		info, err := os.Stat(entry)
		if err != nil {
			return nil, nil, fmt.Errorf("theme %s: %w", entry, err)
		}
		if !info.IsDir() {
			files = append(files, absPath(entry))
			continue
		}
		found, err := tokens.DiscoverCSSFiles(entry, nil, p.cfg.Exclude)
		if err != nil {
			return nil, nil, fmt.Errorf("theme %s: %w", entry, err)
		}
		for _, f := range found {
			files = append(files, absPath(f))
		}
	}
	for _, f := range files {
		p.cache.Invalidate(f)
	}

	table, err := tokens.LoadFiles(files, opts)
	if err != nil {
		return nil, nil, err
	}
	return table, files, nil
}

func (p *Pipeline) scanAll() (*scanner.FileExtraction, error) {
	all := &scanner.FileExtraction{}
	if p.scanner == nil {
		return all, nil
	}
	var exclude []string
	if len(p.cfg.Exclude) > 0 {
		exclude = append(slices.Clone(scanner.DefaultExclude), p.cfg.Exclude...)
	}

	for _, root := range p.cfg.Sources {
		res, err := p.scanner.Scan(root, scanner.ScanConfig{Exclude: exclude})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		all.Sources = append(all.Sources, res.Sources...)
		all.Usages = append(all.Usages, res.Usages...)
	}
	scanner.SortSources(all.Sources)
	scanner.SortUsages(all.Usages)
	return all, nil
}

// Close releases the scanner and file cache.
func (p *Pipeline) Close() error {
	var errs []error
	if p.scanner != nil {
		errs = append(errs, p.scanner.Close())
	}
	errs = append(errs, p.cache.Close())
	return errors.Join(errs...)
}

// --- Build steps ---

// OpacityModifiers collects the opacity variants used by the registry and
// the scanned sources, registry first.
func (s *State) OpacityModifiers() []tokens.OpacityModifier {
	all := append(s.Registry.ClassStrings(), scanner.Strings(s.Sources)...)
	return tokens.ExtractOpacityModifiers(all...)
}

// BuildVariables builds figma-variables.json content.
func (p *Pipeline) BuildVariables(st *State) (*figma.VariablesFile, error) {
	return figma.BuildVariables(st.Tokens, st.OpacityModifiers(), figma.BuildOptions{
		CollectionName: p.cfg.Collection,
		Strict:         p.cfg.Strict,
		Logger:         p.log,
	})
}

// BuildData runs every component generator.
func (p *Pipeline) BuildData(st *State) ([]*generator.ComponentSet, error) {
	return generator.GenerateAll(st.Gen)
}

// Lint checks the registry, the scanned class strings and the prop values of
// scanned component usages.
func (p *Pipeline) Lint(st *State) lint.Report {
	l := lint.NewLinter(st.Tokens, p.log)
	vs := l.LintRegistry(st.Registry)
	vs = append(vs, l.LintSources(st.Sources)...)
	vs = append(vs, lint.LintUsages(st.Registry, st.Usages)...)
	return lint.Summarize(vs)
}

// Result reports the files a build wrote.
type Result struct {
	Files    []string
	Bytes    int
	Warnings []string
}

// WriteVariables builds and writes <dir>/figma-variables.json.
func (p *Pipeline) WriteVariables(st *State, dir string) (*Result, error) {
	file, err := p.BuildVariables(st)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, VariablesFileName)
	n, err := file.WriteFile(path)
	if err != nil {
		return nil, err
	}
	return &Result{Files: []string{path}, Bytes: n, Warnings: file.Warnings}, nil
}

// WriteData generates and writes the component data files under dir.
func (p *Pipeline) WriteData(st *State, dir string) (*Result, error) {
	sets, err := p.BuildData(st)
	if err != nil {
		return nil, err
	}
	res, err := generator.WriteComponents(dir, sets)
	if err != nil {
		return nil, err
	}
	return &Result{Files: res.Files, Bytes: res.Bytes}, nil
}

// WriteAll runs WriteVariables then WriteData into the configured output
// directory.
func (p *Pipeline) WriteAll(st *State) (*Result, error) {
	vars, err := p.WriteVariables(st, p.cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("build variables: %w", err)
	}
	data, err := p.WriteData(st, p.cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("build data: %w", err)
	}
	return &Result{
		Files:    append(vars.Files, data.Files...),
		Bytes:    vars.Bytes + data.Bytes,
		Warnings: vars.Warnings,
	}, nil
}
