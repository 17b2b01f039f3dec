package scanner

import (
	"log/slog"
	"sync"

	"github.com/gnana997/figmagen/pkg/util"
)

// ExtractAll reads and extracts each file on a worker pool. Files that fail
// are logged and counted but do not stop the scan.
func ExtractAll(files []string, ext *Extractor, cache util.FileCache, workers int, logger *slog.Logger) (*FileExtraction, int) {
	all := &FileExtraction{}
	if len(files) == 0 {
		return all, 0
	}
	logger = util.OrDefault(logger)

	numWorkers := util.Workers(workers)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	type resultOrError struct {
		fx   *FileExtraction
		err  error
		file string
	}
	paths := make(chan string, numWorkers*2)
	results := make(chan resultOrError, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				source, err := cache.ReadAll(path)
				if err != nil {
					results <- resultOrError{err: err, file: path}
					continue
				}
				fx, err := ext.Extract(path, source)
				results <- resultOrError{fx: fx, err: err, file: path}
			}
		}()
	}

	go func() {
		for _, f := range files {
			paths <- f
		}
		close(paths)
		wg.Wait()
		close(results)
	}()

	failed := 0
	for r := range results {
		if r.err != nil {
			logger.Warn("extraction failed", "file", r.file, "error", r.err)
			failed++
			continue
		}
		all.Sources = append(all.Sources, r.fx.Sources...)
		all.Usages = append(all.Usages, r.fx.Usages...)
	}
	return all, failed
}
