// Tests for FileCache with mmap-based file access.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestFiles creates a small component source tree.
func setupTestFiles(t *testing.T) (dir string, files map[string]string) {
	t.Helper()

	dir = t.TempDir()
	files = make(map[string]string)

	write := func(name, content string) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		files[name] = path
	}

	write("button.tsx", `export function Button() {
  return <button className="h-9 px-3 bg-kumo-brand">Save</button>;
}`)
	write("theme.css", `:root { --color-kumo-brand: #f6821f; }`)
	write("unicode.tsx", `// 👋 你好
export const Label = () => <span className="text-kumo-default">Hi</span>;`)
	write("empty.css", "")
	write("large.tsx", strings.Repeat("// filler line\n", 1000))

	return dir, files
}

// TestFileCache_BasicOperations verifies core FileCache operations.
func TestFileCache_BasicOperations(t *testing.T) {
	_, files := setupTestFiles(t)
	path := files["button.tsx"]

	cache := NewFileCache(DefaultFileCacheConfig())
	defer cache.Close()

	assert.Equal(t, 0, cache.Size())

	mf, err := cache.Get(path)
	require.NoError(t, err)
	require.NotNil(t, mf)
	assert.Equal(t, path, mf.Path)
	assert.NotNil(t, mf.Data)
	assert.Greater(t, mf.Size, int64(0))
	assert.Equal(t, 1, cache.Size())

	mf2, err := cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, mf.Path, mf2.Path)

	data, err := cache.ReadAll(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bg-kumo-brand")

	stats := cache.Stats()
	assert.Equal(t, 1, stats.FilesCached)
	assert.Equal(t, int64(2), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, int64(1), stats.FilesLoaded)
	assert.Greater(t, stats.TotalMappedBytes, int64(0))

	require.NoError(t, cache.Close())
	assert.Equal(t, 0, cache.Size())
}

// TestFileCache_ReadAllCopySurvivesClose verifies ReadAll returns owned bytes.
func TestFileCache_ReadAllCopySurvivesClose(t *testing.T) {
	_, files := setupTestFiles(t)

	cache := NewFileCache(UnboundedFileCacheConfig())
	data, err := cache.ReadAll(files["theme.css"])
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	assert.Equal(t, ":root { --color-kumo-brand: #f6821f; }", string(data))
}

// TestFileCache_Invalidate verifies a changed file is re-read after invalidation.
func TestFileCache_Invalidate(t *testing.T) {
	_, files := setupTestFiles(t)
	path := files["theme.css"]

	cache := NewFileCache(UnboundedFileCacheConfig())
	defer cache.Close()

	_, err := cache.ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Size())

	require.NoError(t, os.WriteFile(path, []byte(":root { --color-kumo-brand: #000; }"), 0644))
	cache.Invalidate(path)
	assert.Equal(t, 0, cache.Size())

	data, err := cache.ReadAll(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#000")
	assert.Equal(t, int64(1), cache.Stats().Invalidations)

	// Unknown paths are ignored.
	cache.Invalidate(filepath.Join(t.TempDir(), "missing.css"))
	assert.Equal(t, int64(1), cache.Stats().Invalidations)
}

// TestFileCache_Limits_MaxFiles verifies MaxFiles limit enforcement.
func TestFileCache_Limits_MaxFiles(t *testing.T) {
	_, files := setupTestFiles(t)

	cache := NewFileCache(&FileCacheConfig{MaxFiles: 2, EnableMetrics: true})
	defer cache.Close()

	_, err := cache.Get(files["button.tsx"])
	require.NoError(t, err)
	_, err = cache.Get(files["theme.css"])
	require.NoError(t, err)

	_, err = cache.Get(files["unicode.tsx"])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file cache limit reached")

	// Cached files remain reachable at the limit.
	_, err = cache.Get(files["button.tsx"])
	assert.NoError(t, err)
}

// TestFileCache_Limits_MaxMemoryMB verifies the memory limit.
func TestFileCache_Limits_MaxMemoryMB(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.tsx")
	require.NoError(t, os.WriteFile(big, make([]byte, 2*1024*1024), 0644))

	cache := NewFileCache(&FileCacheConfig{MaxMemoryMB: 1})
	defer cache.Close()

	_, err := cache.Get(big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory limit reached")
}

// TestFileCache_EmptyFiles verifies empty files load without mapping.
func TestFileCache_EmptyFiles(t *testing.T) {
	_, files := setupTestFiles(t)

	cache := NewFileCache(UnboundedFileCacheConfig())
	defer cache.Close()

	mf, err := cache.Get(files["empty.css"])
	require.NoError(t, err)
	assert.Nil(t, mf.Data)
	assert.Equal(t, int64(0), mf.Size)

	data, err := cache.ReadAll(files["empty.css"])
	require.NoError(t, err)
	assert.Empty(t, data)
}

// TestFileCache_UnicodeHandling verifies multi-byte content is preserved.
func TestFileCache_UnicodeHandling(t *testing.T) {
	_, files := setupTestFiles(t)

	cache := NewFileCache(UnboundedFileCacheConfig())
	defer cache.Close()

	data, err := cache.ReadAll(files["unicode.tsx"])
	require.NoError(t, err)
	assert.Contains(t, string(data), "👋 你好")
}

// TestFileCache_FileNotFound verifies the error for a missing file.
func TestFileCache_FileNotFound(t *testing.T) {
	cache := NewFileCache(UnboundedFileCacheConfig())
	defer cache.Close()

	_, err := cache.Get("/nonexistent/file.tsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat file")
	assert.Equal(t, 0, cache.Size())
}

// TestFileCache_ConcurrentAccess verifies parallel reads of shared files.
func TestFileCache_ConcurrentAccess(t *testing.T) {
	_, files := setupTestFiles(t)
	paths := []string{files["button.tsx"], files["large.tsx"]}

	cache := NewFileCache(DefaultFileCacheConfig())
	defer cache.Close()

	const numGoroutines = 100
	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			path := paths[id%2]
			data, err := cache.ReadAll(path)
			if err != nil {
				errs <- fmt.Errorf("goroutine %d ReadAll failed: %w", id, err)
				return
			}
			if len(data) == 0 {
				errs <- fmt.Errorf("goroutine %d read no data", id)
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	stats := cache.Stats()
	assert.Equal(t, 2, stats.FilesCached)
	assert.Equal(t, int64(2), stats.FilesLoaded)
}
