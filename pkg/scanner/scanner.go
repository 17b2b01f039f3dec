package scanner

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gnana997/figmagen/pkg/parser"
	"github.com/gnana997/figmagen/pkg/parser/queries"
	"github.com/gnana997/figmagen/pkg/util"
)

// Options configure a Scanner.
type Options struct {
	// Workers is the extraction pool size; 0 selects the CPU-based default.
	Workers int

	// Cache reads source files. A nil cache uses a default mmap cache owned
	// by the scanner.
	Cache util.FileCache
}

// Scanner runs discovery and extraction.
type Scanner struct {
	pm        *parser.ParserManager
	qm        *queries.QueryManager
	ext       *Extractor
	cache     util.FileCache
	ownsCache bool
	workers   int
	log       *slog.Logger
}

// NewScanner creates a scanner with its own parser and query managers.
func NewScanner(logger *slog.Logger, opts Options) *Scanner {
	logger = util.OrDefault(logger)
	workers := util.Workers(opts.Workers)

	// One parser per worker keeps workers from waiting on the pool.
	pm := parser.NewParserManagerWithSize(logger, workers)
	qm := queries.NewQueryManager(logger)

	s := &Scanner{
		pm:      pm,
		qm:      qm,
		ext:     NewExtractor(pm, qm, logger),
		cache:   opts.Cache,
		workers: workers,
		log:     logger,
	}
	if s.cache == nil {
		cfg := util.DefaultFileCacheConfig()
		cfg.Logger = logger
		s.cache = util.NewFileCache(cfg)
		s.ownsCache = true
	}
	return s
}

// Extractor exposes the scanner's extractor for single-source use.
func (s *Scanner) Extractor() *Extractor {
	return s.ext
}

// Scan discovers source files under rootDir and extracts their class strings.
func (s *Scanner) Scan(rootDir string, cfg ScanConfig) (*ScanResult, error) {
	totalStart := time.Now()
	stats := ScanStats{}

	discoveryStart := time.Now()
	files, err := DiscoverFiles(rootDir, cfg)
	if err != nil {
		return nil, err
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()
	s.log.Debug("discovery complete", "files", len(files), "ms", stats.DiscoveryTimeMs)

	extractionStart := time.Now()
	fx, failed := ExtractAll(files, s.ext, s.cache, s.workers, s.log)
	stats.FilesScanned = len(files) - failed
	stats.FilesFailed = failed
	stats.ClassStrings = len(fx.Sources)
	stats.ComponentUsages = len(fx.Usages)
	stats.ExtractionTimeMs = time.Since(extractionStart).Milliseconds()

	SortSources(fx.Sources)
	SortUsages(fx.Usages)
	stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	s.log.Info("scan complete",
		"files", stats.FilesScanned,
		"failed", failed,
		"class_strings", stats.ClassStrings,
		"usages", stats.ComponentUsages,
		"ms", stats.TotalTimeMs)

	return &ScanResult{Sources: fx.Sources, Usages: fx.Usages, Stats: stats}, nil
}

// ScanFiles extracts from an explicit file list, e.g. the files a watcher
// reported as changed. Cached copies are dropped first.
func (s *Scanner) ScanFiles(files []string) (*FileExtraction, error) {
	for _, f := range files {
		s.cache.Invalidate(f)
	}
	fx, failed := ExtractAll(files, s.ext, s.cache, s.workers, s.log)
	if failed == len(files) && failed > 0 {
		return nil, fmt.Errorf("failed to scan %d files", failed)
	}
	SortSources(fx.Sources)
	SortUsages(fx.Usages)
	return fx, nil
}

// Close releases parser, query and cache resources.
func (s *Scanner) Close() error {
	s.qm.Close()
	s.pm.Close()
	if s.ownsCache {
		return s.cache.Close()
	}
	return nil
}

// SortSources orders sources by file, line and column.
func SortSources(sources []ClassSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		a, b := sources[i], sources[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// SortUsages orders usages by file, line and column.
func SortUsages(usages []ComponentUsage) {
	sort.SliceStable(usages, func(i, j int) bool {
		a, b := usages[i], usages[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
