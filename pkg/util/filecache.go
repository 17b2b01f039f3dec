// FileCache gives the scanner and the theme loader memory-mapped access to
// source files. Files are mapped lazily on first access and stay mapped until
// invalidated (watch mode) or the cache is closed.
package util

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
)

// FileCache provides memory-mapped file access.
//
// Thread-safe: lookups take a read lock, loads and invalidation take the
// write lock.
type FileCache interface {
	// Get returns the mapped file, loading it on first access.
	Get(filePath string) (*MappedFile, error)

	// ReadAll returns a copy of the file contents. The copy stays valid after
	// the entry is invalidated or the cache is closed.
	ReadAll(filePath string) ([]byte, error)

	// Invalidate unmaps a single file so the next Get reloads it from disk.
	// Unknown paths are ignored.
	Invalidate(filePath string)

	// Size returns number of currently cached files.
	Size() int

	// Stats returns current cache metrics.
	Stats() FileCacheStats

	// Close unmaps all files and releases resources.
	Close() error
}

// FileCacheConfig controls FileCache behavior.
type FileCacheConfig struct {
	// MaxFiles caps the number of cached files. 0 means unlimited.
	MaxFiles int

	// MaxMemoryMB caps mapped virtual memory in MB. 0 means unlimited.
	MaxMemoryMB int

	// EnableMetrics turns on hit/miss counting.
	EnableMetrics bool

	// Logger for warnings. If nil, uses slog.Default().
	Logger *slog.Logger
}

// DefaultFileCacheConfig returns limits suitable for a component library
// checkout.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{
		MaxFiles:      10000,
		MaxMemoryMB:   2048,
		EnableMetrics: true,
	}
}

// UnboundedFileCacheConfig returns config with no limits. Used by tests.
func UnboundedFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{EnableMetrics: true}
}

// MappedFile represents a memory-mapped file.
type MappedFile struct {
	Path string

	// Data is the mapped region. Nil for empty files.
	Data mmap.MMap

	// File is kept open for cleanup. Nil for fallback entries.
	File *os.File

	Size     int64
	MappedAt time.Time
}

// FileCacheStats tracks cache metrics.
type FileCacheStats struct {
	FilesLoaded   int64
	FilesCached   int
	CacheHits     int64
	CacheMisses   int64
	MmapFailures  int64
	Invalidations int64

	// TotalMappedBytes is the virtual memory currently mapped.
	TotalMappedBytes int64
}

// NewFileCache creates a new FileCache with the given config.
// If config is nil, uses DefaultFileCacheConfig().
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}

	return &fileCacheImpl{
		config:        config,
		cache:         make(map[string]*MappedFile),
		fallbackCache: make(map[string][]byte),
		logger:        OrDefault(config.Logger),
	}
}

type fileCacheImpl struct {
	config *FileCacheConfig
	logger *slog.Logger

	// protected by mu
	cache         map[string]*MappedFile
	fallbackCache map[string][]byte
	mu            sync.RWMutex

	// protected by statsMu
	stats   FileCacheStats
	statsMu sync.Mutex
}

func (fc *fileCacheImpl) Get(filePath string) (*MappedFile, error) {
	fc.mu.RLock()
	if mf, ok := fc.lookupLocked(filePath); ok {
		fc.mu.RUnlock()
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return mf, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine might have loaded it while we waited for Lock.
	if mf, ok := fc.lookupLocked(filePath); ok {
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return mf, nil
	}

	fc.record(func(s *FileCacheStats) { s.CacheMisses++ })

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}
	if err := fc.checkLimitsLocked(stat.Size()); err != nil {
		return nil, err
	}

	mf, err := fc.loadFileLocked(filePath)
	if err != nil {
		return nil, err
	}
	if mf.File != nil {
		fc.cache[filePath] = mf
	}
	fc.record(func(s *FileCacheStats) { s.FilesLoaded++ })

	return mf, nil
}

func (fc *fileCacheImpl) lookupLocked(filePath string) (*MappedFile, bool) {
	if mf, ok := fc.cache[filePath]; ok {
		return mf, true
	}
	if data, ok := fc.fallbackCache[filePath]; ok {
		return wrapFallbackData(filePath, data), true
	}
	return nil, false
}

func (fc *fileCacheImpl) checkLimitsLocked(newFileSize int64) error {
	if fc.config.MaxFiles > 0 {
		current := len(fc.cache) + len(fc.fallbackCache)
		if current >= fc.config.MaxFiles {
			return fmt.Errorf("file cache limit reached: %d files (limit: %d files)",
				current, fc.config.MaxFiles)
		}
	}

	if fc.config.MaxMemoryMB > 0 && newFileSize > 0 {
		limit := int64(fc.config.MaxMemoryMB) * 1024 * 1024
		total := fc.totalBytesLocked() + newFileSize
		if total >= limit {
			return fmt.Errorf("file cache memory limit reached: %d bytes (limit: %d MB)",
				total, fc.config.MaxMemoryMB)
		}
	}

	return nil
}

// loadFileLocked mmaps a file, falling back to os.ReadFile when mapping fails.
func (fc *fileCacheImpl) loadFileLocked(filePath string) (*MappedFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}

	// Zero bytes cannot be mapped.
	if stat.Size() == 0 {
		return &MappedFile{Path: filePath, File: file, MappedAt: time.Now()}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback",
			"file", filePath,
			"size", stat.Size(),
			"error", err)

		raw, readErr := os.ReadFile(filePath)
		file.Close()
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				filePath, err, readErr)
		}

		fc.fallbackCache[filePath] = raw
		fc.record(func(s *FileCacheStats) { s.MmapFailures++ })
		return wrapFallbackData(filePath, raw), nil
	}

	return &MappedFile{
		Path:     filePath,
		Data:     data,
		File:     file,
		Size:     stat.Size(),
		MappedAt: time.Now(),
	}, nil
}

func wrapFallbackData(filePath string, data []byte) *MappedFile {
	return &MappedFile{
		Path:     filePath,
		Data:     mmap.MMap(data),
		Size:     int64(len(data)),
		MappedAt: time.Now(),
	}
}

func (fc *fileCacheImpl) ReadAll(filePath string) ([]byte, error) {
	fc.mu.RLock()
	mf, ok := fc.lookupLocked(filePath)
	if ok {
		out := append([]byte(nil), mf.Data...)
		fc.mu.RUnlock()
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return out, nil
	}
	fc.mu.RUnlock()

	if _, err := fc.Get(filePath); err != nil {
		return nil, err
	}

	// Copy under the read lock so a concurrent Invalidate cannot unmap the
	// region mid-copy.
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	mf, ok = fc.lookupLocked(filePath)
	if !ok {
		return nil, fmt.Errorf("file %q was invalidated during read", filePath)
	}
	return append([]byte(nil), mf.Data...), nil
}

func (fc *fileCacheImpl) Invalidate(filePath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.cache[filePath]; ok {
		if err := unmapFile(mf); err != nil {
			fc.logger.Warn("failed to release file", "path", filePath, "error", err)
		}
		delete(fc.cache, filePath)
		fc.record(func(s *FileCacheStats) { s.Invalidations++ })
	}
	if _, ok := fc.fallbackCache[filePath]; ok {
		delete(fc.fallbackCache, filePath)
		fc.record(func(s *FileCacheStats) { s.Invalidations++ })
	}
}

func (fc *fileCacheImpl) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	return len(fc.cache) + len(fc.fallbackCache)
}

func (fc *fileCacheImpl) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := len(fc.cache) + len(fc.fallbackCache)
	total := fc.totalBytesLocked()
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()

	stats := fc.stats
	stats.FilesCached = cached
	stats.TotalMappedBytes = total
	return stats
}

func (fc *fileCacheImpl) totalBytesLocked() int64 {
	var total int64
	for _, mf := range fc.cache {
		total += mf.Size
	}
	for _, data := range fc.fallbackCache {
		total += int64(len(data))
	}
	return total
}

func (fc *fileCacheImpl) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var errs []error
	for path, mf := range fc.cache {
		if err := unmapFile(mf); err != nil {
			fc.logger.Warn("failed to release file", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("release %q: %w", path, err))
		}
	}

	fc.cache = make(map[string]*MappedFile)
	fc.fallbackCache = make(map[string][]byte)

	fc.statsMu.Lock()
	fc.logger.Debug("file cache closed",
		"files_loaded", fc.stats.FilesLoaded,
		"cache_hits", fc.stats.CacheHits,
		"cache_misses", fc.stats.CacheMisses,
		"mmap_failures", fc.stats.MmapFailures)
	fc.statsMu.Unlock()

	return errors.Join(errs...)
}

func unmapFile(mf *MappedFile) error {
	var errs []error
	if mf.Data != nil && mf.File != nil {
		if err := mf.Data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap: %w", err))
		}
	}
	if mf.File != nil {
		if err := mf.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (fc *fileCacheImpl) record(update func(*FileCacheStats)) {
	if !fc.config.EnableMetrics {
		return
	}
	fc.statsMu.Lock()
	update(&fc.stats)
	fc.statsMu.Unlock()
}
