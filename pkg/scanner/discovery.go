package scanner

import (
	"fmt"

	"github.com/gnana997/figmagen/pkg/parser"
	"github.com/gnana997/figmagen/pkg/util"
)

// defaultInclude matches every extension the parser understands.
func defaultInclude() []string {
	include := make([]string, len(parser.SourceExtensions))
	for i, ext := range parser.SourceExtensions {
		include[i] = "**/*" + ext
	}
	return include
}

// DiscoverFiles walks rootDir applying cfg's globs. An empty include list
// matches all source extensions; an empty exclude list uses DefaultExclude.
// Files with an extension the parser does not know are dropped.
func DiscoverFiles(rootDir string, cfg ScanConfig) ([]string, error) {
	include := cfg.Include
	if len(include) == 0 {
		include = defaultInclude()
	}
	exclude := cfg.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	files, err := util.DiscoverFiles(rootDir, include, exclude)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	out := files[:0]
	for _, f := range files {
		if parser.GrammarForPath(f) != parser.GrammarUnknown {
			out = append(out, f)
		}
	}
	return out, nil
}
